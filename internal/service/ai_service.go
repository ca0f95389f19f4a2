package service

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/logger"
	"ai_interview_backend/pkg/monitoring"
	"ai_interview_backend/pkg/tracing"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeneratedQuestion 模型生成的题目，时限由调用方按难度补齐
type GeneratedQuestion struct {
	Text       string
	Difficulty model.Difficulty
}

type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, resumeText string) ([]GeneratedQuestion, error)
}

type AnswerScorer interface {
	ScoreAnswer(ctx context.Context, q model.Question, resumeText string) (int, error)
}

type SummaryWriter interface {
	GenerateSummary(ctx context.Context, questions []model.Question, totalScore int) (string, error)
}

const (
	opGenerate = "generate_questions"
	opScore    = "score_answer"
	opSummary  = "summarize"

	resumeContextChars = 500
	summaryAnswerChars = 100
)

// GeminiService 基于 Gemini 的出题、评分和总结
type GeminiService struct {
	client        *genai.Client
	model         string
	questionCount int
}

// NewGeminiService httpClient 为 nil 时使用默认客户端
func NewGeminiService(ctx context.Context, cfg *config.AIConfig, httpClient *http.Client) (*GeminiService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL, APIVersion: "v1beta"}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiService{
		client:        client,
		model:         cfg.Model,
		questionCount: cfg.QuestionCount,
	}, nil
}

func (s *GeminiService) GenerateQuestions(ctx context.Context, resumeText string) ([]GeneratedQuestion, error) {
	text, err := s.generate(ctx, opGenerate, questionPrompt(s.questionCount, resumeText), true)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(text, s.questionCount)
	if err != nil {
		logger.Log.Error("Model returned unusable question set",
			zap.String("raw_output", text),
			zap.Error(err),
		)
		return nil, err
	}
	return questions, nil
}

func (s *GeminiService) ScoreAnswer(ctx context.Context, q model.Question, resumeText string) (int, error) {
	text, err := s.generate(ctx, opScore, scorePrompt(q, resumeText), true)
	if err != nil {
		return 0, err
	}

	score, err := parseScore(text)
	if err != nil {
		logger.Log.Error("Model returned unusable score",
			zap.String("raw_output", text),
			zap.Error(err),
		)
		return 0, err
	}
	return score, nil
}

func (s *GeminiService) GenerateSummary(ctx context.Context, questions []model.Question, totalScore int) (string, error) {
	text, err := s.generate(ctx, opSummary, summaryPrompt(questions, totalScore), false)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty summary", util.ErrMalformedAIOutput)
	}
	return text, nil
}

func (s *GeminiService) generate(ctx context.Context, op, prompt string, jsonOutput bool) (text string, err error) {
	ctx, span := tracing.Start(ctx, "gemini."+op)
	span.SetAttributes(attribute.String("ai.model", s.model))
	start := time.Now()
	defer func() {
		monitoring.ObserveAI(op, start, err)
		tracing.End(span, err)
	}()

	var genCfg *genai.GenerateContentConfig
	if jsonOutput {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		genCfg,
	)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", op, err)
	}

	text = responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response for %s", util.ErrMalformedAIOutput, op)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func questionPrompt(count int, resumeText string) string {
	easy, hard := count/3, count/3
	medium := count - easy - hard
	return fmt.Sprintf(`Based on the following resume, generate exactly %d technical interview questions:
%d easy, %d medium, and %d hard.

Each question should test technical knowledge or practical skills relevant to the resume.

Return the questions as a plain JSON array. Each object in the array MUST have two keys:
"question" (string) and "difficulty" (string, must be one of 'easy', 'medium', or 'hard').

The JSON MUST be an array of exactly %d objects. Do not include any extra text or markdown.

Resume:
%s
`, count, easy, medium, hard, count, resumeText)
}

func scorePrompt(q model.Question, resumeText string) string {
	return fmt.Sprintf(`You are an expert technical interviewer. Evaluate the candidate's answer for the question below.
The difficulty was %s. The evaluation must consider the quality of the answer,
technical depth, and relevance to the candidate's resume (provided for context).

The response MUST be a single JSON object with two keys:
1. "score": An integer score between 0 and 100.
2. "rationale": A brief (1-2 sentence) explanation for the score.

Do not include any extra text or markdown.

---
Resume Context: %s...
Question: %s
Candidate's Answer: %s
---
`, q.Difficulty, truncate(resumeText, resumeContextChars), q.Text, q.Answer)
}

func summaryPrompt(questions []model.Question, totalScore int) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		score := "unanswered"
		if q.Score != nil {
			score = fmt.Sprint(*q.Score)
		}
		lines = append(lines, fmt.Sprintf("Difficulty: %s, Question: %s, Score: %s, Answer: %s...",
			q.Difficulty, q.Text, score, truncate(q.Answer, summaryAnswerChars)))
	}

	return fmt.Sprintf(`Based on the following interview results and a total score of %d, generate a professional
candidate summary for an interviewer.

The summary should include:
1. An overall assessment of their technical competence.
2. Strengths identified from their answers.
3. Weaknesses/Areas for improvement.
4. A final recommendation (e.g., 'Strong Hire', 'Potential Hire', 'No Hire').

Interview Details:
%s
`, totalScore, strings.Join(lines, "\n"))
}

// stripFences 去掉 markdown 代码块标记，并截取 open 与 close 之间的内容
func stripFences(text string, open, close byte) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end < start {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[start : end+1])
}

func parseQuestions(text string, want int) ([]GeneratedQuestion, error) {
	var raw []struct {
		Question   string `json:"question"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(stripFences(text, '[', ']')), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedAIOutput, err)
	}
	if len(raw) != want {
		return nil, fmt.Errorf("%w: got %d questions, want %d", util.ErrMalformedAIOutput, len(raw), want)
	}

	out := make([]GeneratedQuestion, 0, len(raw))
	for i, r := range raw {
		d, ok := model.ParseDifficulty(r.Difficulty)
		if !ok {
			return nil, fmt.Errorf("%w: question %d has difficulty %q", util.ErrMalformedAIOutput, i, r.Difficulty)
		}
		if strings.TrimSpace(r.Question) == "" {
			return nil, fmt.Errorf("%w: question %d is empty", util.ErrMalformedAIOutput, i)
		}
		out = append(out, GeneratedQuestion{Text: strings.TrimSpace(r.Question), Difficulty: d})
	}
	return out, nil
}

func parseScore(text string) (int, error) {
	var eval struct {
		Score     *float64 `json:"score"`
		Rationale string   `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(stripFences(text, '{', '}')), &eval); err != nil {
		return 0, fmt.Errorf("%w: %v", util.ErrMalformedAIOutput, err)
	}
	if eval.Score == nil {
		return 0, fmt.Errorf("%w: score missing", util.ErrMalformedAIOutput)
	}
	score := int(math.Round(*eval.Score))
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("%w: score %d out of range", util.ErrMalformedAIOutput, score)
	}
	return score, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
