package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gufengmap/explore-engine/internal/handlers"
	"github.com/gufengmap/explore-engine/pkg/state"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func decodeAPIError(statusCode int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return fmt.Errorf("API returned status %d: %s", statusCode, string(body))
	}
	return fmt.Errorf("%s", errorResp.Error)
}

func postJSON(client *http.Client, url string, reqBody interface{}, okStatus int, out interface{}) error {
	var buf bytes.Buffer
	if reqBody != nil {
		if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := client.Post(url, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != okStatus {
		return decodeAPIError(resp.StatusCode, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func createSession(client *http.Client, baseURL string) (*state.GameState, error) {
	var gs state.GameState
	if err := postJSON(client, baseURL+"/v1/session", nil, http.StatusCreated, &gs); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &gs, nil
}

func getSession(client *http.Client, baseURL string, gs *state.GameState) (*state.GameState, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/session/%s", baseURL, gs.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	var fresh state.GameState
	if err := json.Unmarshal(body, &fresh); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &fresh, nil
}

func questAction(client *http.Client, baseURL string, req handlers.QuestRequest) (*handlers.QuestResponse, error) {
	var resp handlers.QuestResponse
	if err := postJSON(client, baseURL+"/v1/quest", req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func refreshEnvironment(client *http.Client, baseURL string, req handlers.SessionRequest) (*state.EnvironmentInfo, error) {
	var env state.EnvironmentInfo
	if err := postJSON(client, baseURL+"/v1/environment/refresh", req, http.StatusOK, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func generateTask(client *http.Client, baseURL string, req handlers.SessionRequest) (*state.Task, error) {
	var task state.Task
	if err := postJSON(client, baseURL+"/v1/task/generate", req, http.StatusCreated, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
