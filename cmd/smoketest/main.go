package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/saulgabriel7/athlete-core/internal/logging"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
)

const readyTimeout = 10 * time.Second

// apiClient is a minimal JSON client for the athlete API.
type apiClient struct {
	baseURL string
	client  *http.Client
}

// doJSON sends a JSON request and decodes the response body into out when it
// is non-nil.
func (c *apiClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: status code: %d (%s)", method, path, resp.StatusCode, respBody)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response body %q: %w", respBody, err)
		}
	}
	return nil
}

// waitForReady polls the healthcheck until it succeeds or the timeout runs
// out.
func (c *apiClient) waitForReady(ctx context.Context) error {
	start := time.Now()
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/healthy", nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		resp, err := c.client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Since(start) >= readyTimeout {
			return fmt.Errorf("timeout waiting for %s", c.baseURL)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// athleteJourney walks one athlete through the whole API surface.
func athleteJourney(ctx context.Context, client *apiClient) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user struct {
		ID string `json:"id"`
	}
	if err := client.doJSON(ctx, http.MethodPost, "/api/users", map[string]any{
		"name":             "Smoke Tester",
		"age":              30,
		"weight_kg":        80,
		"height_cm":        180,
		"objective":        "hypertrophy",
		"experience_level": "intermediate",
	}, &user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	if err := client.doJSON(ctx, http.MethodGet, "/api/users/"+user.ID+"/nutrition", nil, nil); err != nil {
		return fmt.Errorf("nutrition summary: %w", err)
	}
	if err := client.doJSON(ctx, http.MethodPost, "/api/users/"+user.ID+"/workout-plan", nil, nil); err != nil {
		return fmt.Errorf("generate workout plan: %w", err)
	}
	if err := client.doJSON(ctx, http.MethodPost, "/api/users/"+user.ID+"/meal-plan", nil, nil); err != nil {
		return fmt.Errorf("generate meal plan: %w", err)
	}

	if err := client.doJSON(ctx, http.MethodPost, "/api/users/"+user.ID+"/sessions", map[string]any{
		"duration_minutes": 45,
		"exercises": []map[string]any{{
			"exercise_id":    1,
			"sets_performed": 3,
			"reps":           []int{10, 10, 10},
			"loads_kg":       []float64{50, 50, 50},
		}},
	}, nil); err != nil {
		return fmt.Errorf("log session: %w", err)
	}

	var recommendations struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := client.doJSON(ctx, http.MethodGet, "/api/users/"+user.ID+"/recommendations", nil, &recommendations); err != nil {
		return fmt.Errorf("recommendations: %w", err)
	}
	if len(recommendations.Recommendations) == 0 {
		return fmt.Errorf("expected recommendations for user %s", user.ID)
	}

	if err := client.doJSON(ctx, http.MethodDelete, "/api/users/"+user.ID, nil, nil); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client := &apiClient{baseURL: url, client: &http.Client{}}
	if err := client.waitForReady(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err := athleteJourney(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error running athlete journey", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
