// Package narrative turns a finished battle into AI-generated flavor text.
// It is purely additive: the report never influences combat resolution, and
// battles resolve normally when no API key is configured.
package narrative

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
)

// ErrNoAPIKey signals that report generation is disabled in this
// deployment; callers should fall back to the plain log.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY not set")

// reportPromptTemplate can be set at application startup to customize the
// prompt used when requesting battle reports. Use the token "{{summary}}"
// where the battle summary will be substituted.
var reportPromptTemplate string

// SetReportPromptTemplate sets a custom prompt template for battle report
// generation. Call from main after loading configuration.
func SetReportPromptTemplate(t string) {
	reportPromptTemplate = strings.TrimSpace(t)
}

// buildSummary flattens the result into the compact text block fed to the
// prompt: outcome, surviving units and the significant events.
func buildSummary(res *game.CombatResult) string {
	var b strings.Builder
	if res.PlayerVictory {
		b.WriteString("Outcome: victory in " + strconv.Itoa(res.TurnsElapsed) + " turns.\n")
	} else if res.TimedOut {
		b.WriteString("Outcome: stalemate after " + strconv.Itoa(res.TurnsElapsed) + " turns.\n")
	} else {
		b.WriteString("Outcome: defeat after " + strconv.Itoa(res.TurnsElapsed) + " turns.\n")
	}
	b.WriteString("Units:\n")
	for _, u := range res.Units {
		status := "survived with " + strconv.Itoa(u.CurrentHealth) + "/" + strconv.Itoa(u.MaxHealth) + " health"
		if u.Defeated {
			status = "was destroyed"
		}
		b.WriteString("- " + u.Name + " (" + u.Side + ", " + u.Kind + ") " + status + "\n")
	}
	if len(res.SignificantEvents) > 0 {
		b.WriteString("Key moments:\n")
		for _, ev := range res.SignificantEvents {
			b.WriteString("- " + ev.Message + "\n")
		}
	}
	return b.String()
}

// GenerateBattleReport invokes the OpenAI Chat Completions API to produce
// a short narrative report for a finished battle. It returns the report
// text or an error if the request failed.
func GenerateBattleReport(res *game.CombatResult) (string, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return "", ErrNoAPIKey
	}

	summary := buildSummary(res)
	prompt := reportPromptTemplate
	if prompt == "" {
		prompt = "Write a dramatic 3-4 sentence battle report for a microscopic war inside the human body, based on this summary:\n{{summary}}\nReturn only the report text."
	}
	prompt = strings.ReplaceAll(prompt, "{{summary}}", summary)

	logging.Debug("battle-report openai prompt", logging.Fields{"prompt": prompt})

	payload := map[string]interface{}{
		"model": constants.OpenAIChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a war correspondent narrating battles between antibodies and pathogens."},
			{"role": "user", "content": prompt},
		},
		"max_completion_tokens": 3100,
		"service_tier":          "default",
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", constants.OpenAIBaseURL+constants.OpenAIChatCompletionsPath, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
