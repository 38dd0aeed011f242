package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/gufengmap/explore-engine/pkg/chat"
	"github.com/gufengmap/explore-engine/pkg/state"
)

func testEnv(weather, festival, season string) *state.EnvironmentInfo {
	env := &state.EnvironmentInfo{Season: season, Festival: festival}
	if weather != "" {
		env.Weather = &state.Weather{Weather: weather, Temperature: "20"}
	}
	return env
}

func TestTaskGenerator_GenerateFromLLM(t *testing.T) {
	llm := NewMockLLM()
	llm.ChatFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return `这是为您生成的任务：
{
  "title": "雪夜访梅",
  "description": "踏雪寻梅，探访园林深处。",
  "type": "weather",
  "duration": 4,
  "reward": "梅花徽章",
  "weatherCondition": "雪",
  "festivalType": ""
}
祝游玩愉快！`, nil
	}
	gen := NewTaskGenerator(llm, slog.Default())

	task := gen.Generate(context.Background(), testEnv("雪", "", "冬季"))
	if task.Title != "雪夜访梅" {
		t.Errorf("expected LLM task title, got %q", task.Title)
	}
	if task.DurationHours != 4 {
		t.Errorf("expected duration 4, got %d", task.DurationHours)
	}
	if task.Reward != "梅花徽章" {
		t.Errorf("expected reward 梅花徽章, got %q", task.Reward)
	}

	if len(llm.ChatCalls) != 1 {
		t.Fatalf("expected 1 LLM call, got %d", len(llm.ChatCalls))
	}
	prompt := llm.ChatCalls[0][1].Content
	if !strings.Contains(prompt, "雪") || !strings.Contains(prompt, "冬季") {
		t.Errorf("expected prompt to carry weather and season, got %q", prompt)
	}
}

func TestTaskGenerator_BackfillsMissingFields(t *testing.T) {
	llm := NewMockLLM()
	llm.ChatFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return `{"title": "中秋赏月"}`, nil
	}
	gen := NewTaskGenerator(llm, slog.Default())

	task := gen.Generate(context.Background(), testEnv("晴", "中秋节", "秋季"))
	if task.Title != "中秋赏月" {
		t.Errorf("expected LLM title, got %q", task.Title)
	}
	if task.Description == "" {
		t.Error("expected description to be back-filled")
	}
	if task.Type != "festival" {
		t.Errorf("expected type festival during a festival, got %q", task.Type)
	}
	if task.DurationHours != 6 {
		t.Errorf("expected default duration 6, got %d", task.DurationHours)
	}
	if task.WeatherTag != "晴" {
		t.Errorf("expected weather tag back-filled from environment, got %q", task.WeatherTag)
	}
	if task.FestivalTag != "中秋节" {
		t.Errorf("expected festival tag back-filled from environment, got %q", task.FestivalTag)
	}
}

func TestTaskGenerator_FallbackOnLLMError(t *testing.T) {
	llm := NewMockLLM()
	llm.ChatFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return "", fmt.Errorf("connection refused")
	}
	gen := NewTaskGenerator(llm, slog.Default())

	task := gen.Generate(context.Background(), testEnv("晴", "", "夏季"))
	if task.Title != "晴日探访" {
		t.Errorf("expected clear-weather template, got %q", task.Title)
	}
}

func TestTaskGenerator_FallbackOnUnparseableReply(t *testing.T) {
	llm := NewMockLLM()
	llm.ChatFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return "抱歉，我无法生成任务。", nil
	}
	gen := NewTaskGenerator(llm, slog.Default())

	task := gen.Generate(context.Background(), testEnv("小雨", "", "春季"))
	if task.Title != "雨中漫步" {
		t.Errorf("expected rain template, got %q", task.Title)
	}
}

func TestTaskGenerator_NilLLMUsesTemplates(t *testing.T) {
	gen := NewTaskGenerator(nil, slog.Default())

	task := gen.Generate(context.Background(), testEnv("阴", "", "冬季"))
	if task.Title != "古风探索" {
		t.Errorf("expected generic template, got %q", task.Title)
	}
}

func TestFallbackTask_FestivalWinsOverWeather(t *testing.T) {
	task := fallbackTask(testEnv("小雨", "春节", "冬季"))
	if task.Type != "festival" {
		t.Errorf("expected festival template to take precedence, got type %q", task.Type)
	}
	if task.Title != "春节庆典" {
		t.Errorf("expected 春节庆典, got %q", task.Title)
	}
	if task.DurationHours != 12 {
		t.Errorf("expected festival duration 12, got %d", task.DurationHours)
	}
	if task.FestivalTag != "春节" {
		t.Errorf("expected festival tag 春节, got %q", task.FestivalTag)
	}
}

func TestFallbackTask_WeatherTemplates(t *testing.T) {
	tests := []struct {
		weather string
		title   string
		hours   int
	}{
		{"小雨", "雨中漫步", 6},
		{"大雪", "雨中漫步", 6},
		{"晴", "晴日探访", 8},
		{"多云", "晴日探访", 8},
		{"雾", "古风探索", 6},
	}

	for _, tt := range tests {
		task := fallbackTask(testEnv(tt.weather, "", "夏季"))
		if task.Title != tt.title {
			t.Errorf("weather %q: expected title %q, got %q", tt.weather, tt.title, task.Title)
		}
		if task.DurationHours != tt.hours {
			t.Errorf("weather %q: expected duration %d, got %d", tt.weather, tt.hours, task.DurationHours)
		}
	}
}

func TestParseGeneratedTask_RejectsEmptyTitle(t *testing.T) {
	if _, err := parseGeneratedTask(`{"description": "无标题任务"}`); err == nil {
		t.Error("expected error for task without title")
	}
}
