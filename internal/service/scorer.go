package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hireloop/interview-api/config"
	"github.com/hireloop/interview-api/internal/constants"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
)

// RubricScores carries the graded criteria plus advice lists, whether they
// came from the remote scoring API or the local fallback heuristic.
type RubricScores struct {
	ContentRelevance      int      `json:"content_relevance"`
	CommunicationClarity  int      `json:"communication_clarity"`
	StructureOrganization int      `json:"structure_organization"`
	TechnicalAccuracy     *int     `json:"technical_accuracy"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	Suggestions           []string `json:"suggestions"`
}

// TextMetrics is the lexical profile of a response.
type TextMetrics struct {
	WordCount          int
	SentenceCount      int
	UniqueWords        int
	AvgWordsPerSent    float64
	FillerWordsCount   int
	FillerWordsRatio   float64
	ReadabilityScore   float64
	StructureScore     int
	HasIntroduction    bool
	HasBody            bool
	HasConclusion      bool
	SentimentScore     float64
	PositiveConfidence int
	NegativeConfidence int
}

// ScoreResult is the fully blended outcome stored against a response.
type ScoreResult struct {
	OverallScore           int
	ContentRelevanceScore  int
	CommunicationClarity   int
	StructureOrganization  int
	TechnicalAccuracyScore *int
	SentimentScore         float64
	ConfidenceIndicators   int
	FillerWordsCount       int
	WordCount              int
	UniqueWordsCount       int
	Strengths              []string
	Weaknesses             []string
	Suggestions            []string
	ModelVersion           string
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

var fillerWords = map[string]struct{}{
	"um": {}, "uh": {}, "like": {}, "you know": {}, "so": {}, "well": {},
	"actually": {}, "basically": {}, "literally": {}, "obviously": {},
	"definitely": {}, "totally": {}, "really": {}, "very": {}, "quite": {},
	"sort of": {}, "kind of": {},
}

var positiveConfidenceWords = []string{
	"confident", "certain", "sure", "definitely", "absolutely",
	"clearly", "obviously", "undoubtedly", "precisely",
}

var negativeConfidenceWords = []string{
	"maybe", "perhaps", "possibly", "might", "could be",
	"not sure", "uncertain", "unclear", "confused",
}

var positiveSentimentWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "successful": {}, "achieved": {},
	"accomplished": {}, "effective": {}, "efficient": {}, "improved": {},
}

var negativeSentimentWords = map[string]struct{}{
	"bad": {}, "poor": {}, "failed": {}, "difficult": {}, "challenging": {},
	"problem": {}, "issue": {}, "mistake": {}, "error": {},
}

var structureWords = struct {
	intro, body, conclusion []string
}{
	intro:      []string{"first", "initially", "to begin", "starting"},
	body:       []string{"then", "next", "after", "following", "subsequently"},
	conclusion: []string{"finally", "in conclusion", "to summarize", "overall"},
}

// AnalyzeText computes the lexical profile used to adjust rubric scores.
func AnalyzeText(text string) TextMetrics {
	words := strings.Fields(text)

	sentences := sentenceSplitter.Split(text, -1)
	kept := sentences[:0]
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, strings.TrimSpace(s))
		}
	}
	sentences = kept

	metrics := TextMetrics{
		WordCount:     len(words),
		SentenceCount: len(sentences),
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		lower := strings.ToLower(w)
		unique[lower] = struct{}{}
		if _, ok := fillerWords[lower]; ok {
			metrics.FillerWordsCount++
		}
		if _, ok := positiveSentimentWords[lower]; ok {
			metrics.SentimentScore++
		}
		if _, ok := negativeSentimentWords[lower]; ok {
			metrics.SentimentScore--
		}
	}
	metrics.UniqueWords = len(unique)

	if len(words) > 0 {
		metrics.FillerWordsRatio = float64(metrics.FillerWordsCount) / float64(len(words))
		metrics.SentimentScore = clampFloat(metrics.SentimentScore/float64(len(words)), -1, 1)
	}

	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	metrics.AvgWordsPerSent = float64(len(words)) / float64(sentenceCount)
	metrics.ReadabilityScore = fleschReadingEase(len(words), len(sentences))

	lower := strings.ToLower(text)
	for _, w := range positiveConfidenceWords {
		if strings.Contains(lower, w) {
			metrics.PositiveConfidence++
		}
	}
	for _, w := range negativeConfidenceWords {
		if strings.Contains(lower, w) {
			metrics.NegativeConfidence++
		}
	}

	metrics.StructureScore, metrics.HasIntroduction, metrics.HasBody, metrics.HasConclusion =
		analyzeStructure(sentences)

	return metrics
}

// fleschReadingEase approximates readability from sentence length alone.
func fleschReadingEase(words, sentences int) float64 {
	if words == 0 || sentences == 0 {
		return 50.0
	}
	avg := float64(words) / float64(sentences)
	return clampFloat(206.835-1.015*avg, 0, 100)
}

// analyzeStructure scores the intro/body/conclusion shape of a response.
// An opener in the first two sentences counts as an introduction, a closer
// in the last two as a conclusion. Three or more sentences earn a bonus.
func analyzeStructure(sentences []string) (score int, hasIntro, hasBody, hasConclusion bool) {
	containsAny := func(sentence string, markers []string) bool {
		lower := strings.ToLower(sentence)
		for _, m := range markers {
			if strings.Contains(lower, m) {
				return true
			}
		}
		return false
	}

	head := sentences
	if len(head) > 2 {
		head = head[:2]
	}
	for _, s := range head {
		if containsAny(s, structureWords.intro) {
			hasIntro = true
			break
		}
	}

	for _, s := range sentences {
		if containsAny(s, structureWords.body) {
			hasBody = true
			break
		}
	}

	tail := sentences
	if len(tail) > 2 {
		tail = tail[len(tail)-2:]
	}
	for _, s := range tail {
		if containsAny(s, structureWords.conclusion) {
			hasConclusion = true
			break
		}
	}

	if hasIntro {
		score += 30
	}
	if hasBody {
		score += 40
	}
	if hasConclusion {
		score += 30
	}
	if len(sentences) >= 3 {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	return score, hasIntro, hasBody, hasConclusion
}

// RemoteScorer calls the external scoring API for rubric grades.
type RemoteScorer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewRemoteScorer(cfg config.ScoringConfig) *RemoteScorer {
	if cfg.Endpoint == "" {
		return nil
	}
	return &RemoteScorer{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type remoteScoreRequest struct {
	Text         string `json:"text"`
	Question     string `json:"question"`
	QuestionType string `json:"question_type"`
}

func (r *RemoteScorer) Score(ctx context.Context, text, question, questionType string) (*RubricScores, error) {
	body, err := json.Marshal(remoteScoreRequest{
		Text:         text,
		Question:     question,
		QuestionType: questionType,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if r.apiKey != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoring api returned status %d", resp.StatusCode)
	}

	var scores RubricScores
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, err
	}

	scores.ContentRelevance = clampScore(scores.ContentRelevance)
	scores.CommunicationClarity = clampScore(scores.CommunicationClarity)
	scores.StructureOrganization = clampScore(scores.StructureOrganization)
	if scores.TechnicalAccuracy != nil {
		clamped := clampScore(*scores.TechnicalAccuracy)
		scores.TechnicalAccuracy = &clamped
	}

	return &scores, nil
}

// fallbackScores grades by length alone when the remote scorer is
// unavailable.
func fallbackScores(text, questionType string) *RubricScores {
	wordCount := len(strings.Fields(text))
	base := wordCount * 2
	if base < 40 {
		base = 40
	}
	if base > 85 {
		base = 85
	}

	scores := &RubricScores{
		ContentRelevance:      base,
		CommunicationClarity:  base - 5,
		StructureOrganization: base - 10,
		Strengths: []string{
			"Response provided",
			"Attempted to answer",
			"Used appropriate language",
		},
		Weaknesses: []string{
			"Could be more detailed",
			"Could improve structure",
			"Could add examples",
		},
		Suggestions: []string{
			"Provide more specific examples",
			"Organize response better",
			"Expand on key points",
		},
	}

	if questionType == constants.QuestionTypeTechnical {
		technical := base
		scores.TechnicalAccuracy = &technical
	}

	return scores
}

// ScoringService blends rubric grades with the lexical analysis.
type ScoringService struct {
	remote       *RemoteScorer
	modelVersion string
}

func NewScoringService(cfg config.ScoringConfig) *ScoringService {
	return &ScoringService{
		remote:       NewRemoteScorer(cfg),
		modelVersion: cfg.ModelVersion,
	}
}

// Score grades a response. Remote failures fall back to the length
// heuristic rather than failing the submission.
func (s *ScoringService) Score(ctx context.Context, text, question, questionType string) *ScoreResult {
	ctx = ctxutil.WithOperation(ctx, "service", "Score")

	if strings.TrimSpace(text) == "" {
		return &ScoreResult{ModelVersion: s.modelVersion}
	}

	metrics := AnalyzeText(text)

	var rubric *RubricScores
	if s.remote != nil {
		start := time.Now()
		remote, err := s.remote.Score(ctx, text, question, questionType)
		if err != nil {
			logger.WarnWithContext(ctx, "Remote scoring failed, using fallback").
				Duration(time.Since(start)).
				Err(err).
				Log()
		} else {
			rubric = remote
		}
	}
	if rubric == nil {
		rubric = fallbackScores(text, questionType)
	}

	return s.blend(rubric, metrics, questionType)
}

// blend folds the lexical metrics into the rubric grades. Filler words
// penalize clarity up to 20 points, and the measured structure shape pulls
// the structure grade toward itself at 30 percent weight.
func (s *ScoringService) blend(rubric *RubricScores, metrics TextMetrics, questionType string) *ScoreResult {
	clarityScore := rubric.CommunicationClarity
	fillerPenalty := int(clampFloat(metrics.FillerWordsRatio*100, 0, 20))
	clarityScore = clampScore(clarityScore - fillerPenalty)

	structureScore := rubric.StructureOrganization
	structureBonus := int(float64(metrics.StructureScore-70) * 0.3)
	structureScore = clampScore(structureScore + structureBonus)

	scores := []int{rubric.ContentRelevance, clarityScore, structureScore}
	var technical *int
	if rubric.TechnicalAccuracy != nil && questionType == constants.QuestionTypeTechnical {
		technical = rubric.TechnicalAccuracy
		scores = append(scores, *technical)
	}

	sum := 0
	for _, v := range scores {
		sum += v
	}
	overall := sum / len(scores)

	return &ScoreResult{
		OverallScore:           overall,
		ContentRelevanceScore:  rubric.ContentRelevance,
		CommunicationClarity:   clarityScore,
		StructureOrganization:  structureScore,
		TechnicalAccuracyScore: technical,
		SentimentScore:         metrics.SentimentScore,
		ConfidenceIndicators:   metrics.PositiveConfidence,
		FillerWordsCount:       metrics.FillerWordsCount,
		WordCount:              metrics.WordCount,
		UniqueWordsCount:       metrics.UniqueWords,
		Strengths:              rubric.Strengths,
		Weaknesses:             rubric.Weaknesses,
		Suggestions:            rubric.Suggestions,
		ModelVersion:           s.modelVersion,
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
