package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gufengmap/explore-engine/pkg/chat"
	"github.com/gufengmap/explore-engine/pkg/state"
)

const taskGenSystemPrompt = "你是一个古风游戏的任务设计师，专门为古风探索游戏生成有趣的限时任务。"

// jsonBlockPattern extracts the first JSON object from an LLM reply, which
// often wraps it in prose or a markdown fence.
var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// TaskGenerator produces limited-time tasks from live weather and festival
// context, with an LLM backend and deterministic template fallbacks.
type TaskGenerator struct {
	llm    LLMService
	logger *slog.Logger
}

// NewTaskGenerator creates a generator over an LLM backend. llm may be nil,
// in which case only template tasks are produced.
func NewTaskGenerator(llm LLMService, logger *slog.Logger) *TaskGenerator {
	return &TaskGenerator{llm: llm, logger: logger}
}

// Generate builds one task for the given environment. Any LLM failure,
// including an unparseable reply, degrades to a template task; Generate
// itself never fails.
func (g *TaskGenerator) Generate(ctx context.Context, env *state.EnvironmentInfo) state.GeneratedTask {
	if g.llm == nil {
		return fallbackTask(env)
	}

	messages := []chat.Message{
		{Role: chat.RoleSystem, Content: taskGenSystemPrompt},
		{Role: chat.RoleUser, Content: buildTaskPrompt(env)},
	}
	reply, err := g.llm.Chat(ctx, messages)
	if err != nil {
		g.logger.Warn("task generation LLM call failed, using template", "error", err)
		return fallbackTask(env)
	}

	task, err := parseGeneratedTask(reply)
	if err != nil {
		g.logger.Warn("could not parse generated task, using template", "error", err)
		return fallbackTask(env)
	}
	fillTaskDefaults(task, env)
	return *task
}

func buildTaskPrompt(env *state.EnvironmentInfo) string {
	var b strings.Builder
	b.WriteString("请根据以下环境信息生成一个古风限时任务：\n")
	if env.Weather != nil {
		fmt.Fprintf(&b, "当前天气：%s，气温%s度\n", env.Weather.Weather, env.Weather.Temperature)
	}
	if env.Festival != "" {
		fmt.Fprintf(&b, "当前节日：%s\n", env.Festival)
	}
	fmt.Fprintf(&b, "当前季节：%s\n", env.Season)
	b.WriteString(`请以JSON格式返回，包含以下字段：
{
  "title": "任务标题",
  "description": "任务描述",
  "type": "weather或festival或seasonal",
  "duration": 持续小时数,
  "reward": "奖励描述",
  "weatherCondition": "相关天气",
  "festivalType": "相关节日"
}`)
	return b.String()
}

func parseGeneratedTask(reply string) (*state.GeneratedTask, error) {
	raw := jsonBlockPattern.FindString(reply)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in reply")
	}
	var task state.GeneratedTask
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return nil, fmt.Errorf("failed to parse task JSON: %w", err)
	}
	if task.Title == "" {
		return nil, fmt.Errorf("generated task has no title")
	}
	return &task, nil
}

// fillTaskDefaults back-fills fields the LLM left blank so downstream code
// never sees a partial task.
func fillTaskDefaults(task *state.GeneratedTask, env *state.EnvironmentInfo) {
	if task.Description == "" {
		task.Description = "完成这个与当前环境相关的特殊任务。"
	}
	if task.Type == "" {
		if env.Festival != "" {
			task.Type = "festival"
		} else {
			task.Type = "weather"
		}
	}
	if task.DurationHours <= 0 {
		task.DurationHours = 6
	}
	if task.Reward == "" {
		task.Reward = "限时徽章"
	}
	if task.WeatherTag == "" && env.Weather != nil {
		task.WeatherTag = env.Weather.Weather
	}
	if task.FestivalTag == "" {
		task.FestivalTag = env.Festival
	}
}

// fallbackTask picks a deterministic template when the LLM is unavailable.
// Festival context wins over weather.
func fallbackTask(env *state.EnvironmentInfo) state.GeneratedTask {
	weather := ""
	if env.Weather != nil {
		weather = env.Weather.Weather
	}

	switch {
	case env.Festival != "":
		return state.GeneratedTask{
			Title:         fmt.Sprintf("%s庆典", env.Festival),
			Description:   fmt.Sprintf("参与%s的庆祝活动，感受传统节日的魅力。", env.Festival),
			Type:          "festival",
			DurationHours: 12,
			Reward:        fmt.Sprintf("%s纪念徽章", env.Festival),
			WeatherTag:    weather,
			FestivalTag:   env.Festival,
		}
	case strings.Contains(weather, "雨") || strings.Contains(weather, "雪"):
		return state.GeneratedTask{
			Title:         "雨中漫步",
			Description:   "在雨雪天气中探访古迹，体会别样的诗意。",
			Type:          "weather",
			DurationHours: 6,
			Reward:        "雨行者徽章",
			WeatherTag:    weather,
		}
	case strings.Contains(weather, "晴") || strings.Contains(weather, "多云"):
		return state.GeneratedTask{
			Title:         "晴日探访",
			Description:   "趁着好天气，走访周边的古风景点。",
			Type:          "weather",
			DurationHours: 8,
			Reward:        "探索者徽章",
			WeatherTag:    weather,
		}
	default:
		return state.GeneratedTask{
			Title:         "古风探索",
			Description:   "探索身边的古风景点，发现历史的痕迹。",
			Type:          "seasonal",
			DurationHours: 6,
			Reward:        "古风徽章",
			WeatherTag:    weather,
		}
	}
}
