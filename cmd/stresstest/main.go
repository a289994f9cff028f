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
	"sync/atomic"
	"time"

	"github.com/saulgabriel7/athlete-core/internal/logging"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	readyTimeout            = 10 * time.Second
	scenarioTimeout         = 30 * time.Second
	historyTimeout          = 5 * time.Minute
	maxConcurrentOperations = 20
	numUsers                = 10
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
	sessionHistoryWeeks     = 26 // 6 months of weekly sessions
	daysPerWeek             = 7
	expectedArgsCount       = 2
)

// apiClient is a minimal JSON client for the athlete API.
type apiClient struct {
	baseURL string
	client  *http.Client
}

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

// setupUsers registers numUsers athletes concurrently and returns their IDs.
func setupUsers(ctx context.Context, client *apiClient, logger *slog.Logger) ([]string, error) {
	logger.LogAttrs(ctx, slog.LevelInfo, "Registering users", slog.Int("num_users", numUsers))

	userIDs := make([]string, numUsers)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	objectives := []string{"hypertrophy", "fat_loss", "conditioning", "performance"}
	for i := range numUsers {
		g.Go(func() error {
			var user struct {
				ID string `json:"id"`
			}
			if err := client.doJSON(ctx, http.MethodPost, "/api/users", map[string]any{
				"name":             fmt.Sprintf("Load Tester %d", i),
				"age":              25 + i,
				"weight_kg":        70 + float64(i),
				"height_cm":        175,
				"objective":        objectives[i%len(objectives)],
				"experience_level": "intermediate",
			}, &user); err != nil {
				return fmt.Errorf("register user %d: %w", i, err)
			}
			userIDs[i] = user.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("setup users: %w", err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "All users registered", slog.Int("total_users", len(userIDs)))
	return userIDs, nil
}

// generateSessionHistory logs six months of weekly sessions for a user so the
// recommendation trends have data to work with.
func generateSessionHistory(ctx context.Context, client *apiClient, userID string) error {
	now := time.Now()
	startDate := now.AddDate(0, -6, 0)

	for week := range sessionHistoryWeeks {
		sessionDate := startDate.AddDate(0, 0, week*daysPerWeek)
		if sessionDate.After(now) {
			continue
		}

		// Slight progression over the weeks keeps the scores varied.
		load := 40 + float64(week)/2
		reps := 8 + week%3
		if err := client.doJSON(ctx, http.MethodPost, "/api/users/"+userID+"/sessions", map[string]any{
			"date":             sessionDate.Format("2006-01-02"),
			"duration_minutes": 40 + week%20,
			"exercises": []map[string]any{{
				"exercise_id":    1 + week%4,
				"sets_performed": 3,
				"reps":           []int{reps, reps, reps},
				"loads_kg":       []float64{load, load, load},
			}},
		}, nil); err != nil {
			return fmt.Errorf("log session for %s: %w", sessionDate.Format("2006-01-02"), err)
		}
	}

	return nil
}

// generateHistoryForUsers runs history generation for all users concurrently.
func generateHistoryForUsers(ctx context.Context, client *apiClient, userIDs []string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)
	for _, userID := range userIDs {
		g.Go(func() error {
			if err := generateSessionHistory(ctx, client, userID); err != nil {
				return fmt.Errorf("user %s: %w", userID, err)
			}
			logger.LogAttrs(ctx, slog.LevelDebug, "Generated session history", slog.String("user_id", userID))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("generate session history: %w", err)
	}
	return nil
}

// athleteScenario exercises the hot paths for one user.
func athleteScenario(ctx context.Context, client *apiClient, userID string) error {
	if err := client.doJSON(ctx, http.MethodPost, "/api/users/"+userID+"/workout-plan", nil, nil); err != nil {
		return fmt.Errorf("generate workout plan: %w", err)
	}
	if err := client.doJSON(ctx, http.MethodGet, "/api/users/"+userID+"/workout-plan", nil, nil); err != nil {
		return fmt.Errorf("get workout plan: %w", err)
	}
	if err := client.doJSON(ctx, http.MethodPost, "/api/users/"+userID+"/meal-plan", nil, nil); err != nil {
		return fmt.Errorf("generate meal plan: %w", err)
	}
	if err := client.doJSON(ctx, http.MethodGet, "/api/users/"+userID+"/nutrition", nil, nil); err != nil {
		return fmt.Errorf("nutrition summary: %w", err)
	}
	if err := client.doJSON(ctx, http.MethodPost, "/api/users/"+userID+"/sessions", map[string]any{
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
	if err := client.doJSON(ctx, http.MethodGet, "/api/users/"+userID+"/recommendations", nil, nil); err != nil {
		return fmt.Errorf("recommendations: %w", err)
	}
	return nil
}

// runLoadTest runs the scenario for every user concurrently and fails when
// the success rate drops below the threshold.
func runLoadTest(ctx context.Context, client *apiClient, userIDs []string, logger *slog.Logger) error {
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test", slog.Int("num_users", len(userIDs)))

	var successCount, failureCount int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)
	for _, userID := range userIDs {
		g.Go(func() error {
			scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
			defer cancel()

			if err := athleteScenario(scenarioCtx, client, userID); err != nil {
				atomic.AddInt64(&failureCount, 1)
				// Log individual failures but don't stop the entire test.
				logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
					slog.String("user_id", userID),
					slog.Any("error", err))
				return nil
			}

			atomic.AddInt64(&successCount, 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount) / float64(len(userIDs)) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount),
		slog.Int64("failed", failureCount),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
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

	setupStart := time.Now()
	userIDs, err := setupUsers(ctx, client, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to setup users", slog.Any("error", err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "User setup completed",
		slog.Duration("setup_duration", time.Since(setupStart)),
		slog.Int("registered_users", len(userIDs)))

	historyStart := time.Now()
	if err = generateHistoryForUsers(ctx, client, userIDs, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "some session history generation failed, continuing with load test",
			slog.Any("error", err))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Session history generation completed",
		slog.Duration("history_duration", time.Since(historyStart)))

	if err = runLoadTest(ctx, client, userIDs, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)),
		slog.Int("users_tested", len(userIDs)))
}
