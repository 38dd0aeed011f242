package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/gufengmap/explore-engine/internal/handlers"
	"github.com/gufengmap/explore-engine/pkg/quest"
	"github.com/gufengmap/explore-engine/pkg/state"
)

const (
	GuideName       = "吟风"
	PlaceHolderText = "输入答案或消息，/help 查看命令..."
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	gameState    *state.GameState
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	log          []logEntry
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type logEntry struct {
	speaker string // empty for user lines
	text    string
	isError bool
}

type questMsg struct {
	resp *handlers.QuestResponse
	err  error
}

type sessionMsg struct {
	gameState *state.GameState
	err       error
}

type envMsg struct {
	env *state.EnvironmentInfo
	err error
}

type taskMsg struct {
	task *state.Task
	err  error
}

type copiedMsg struct {
	err error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	guideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, gs *state.GameState) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	ui := ConsoleUI{
		config:       cfg,
		client:       client,
		gameState:    gs,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
	ui.log = append(ui.log, logEntry{
		speaker: GuideName,
		text:    quest.YinFeng.Greetings[0],
	})
	return ui
}

func (m *ConsoleUI) appendLog(entry logEntry) {
	m.log = append(m.log, entry)
}

func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("古风探索地图") + "\n\n")
	content.WriteString("与诗灵对话，答诗谜、访诗人、作诗词。\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, entry := range m.log {
		switch {
		case entry.isError:
			content.WriteString(errorStyle.Render("错误: "+entry.text) + "\n\n")
		case entry.speaker == "":
			content.WriteString(userStyle.Render("你: ") + wordwrap.String(entry.text, chatWidth-6) + "\n\n")
		default:
			prefix := speakerStyle.Render(entry.speaker + ": ")
			content.WriteString(prefix + guideStyle.Render(wordwrap.String(entry.text, chatWidth-10)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func stageLabel(s quest.Stage) string {
	switch s {
	case quest.StagePoetryRiddle:
		return "一·诗词谜题"
	case quest.StagePoetExploration:
		return "二·诗人探寻"
	case quest.StagePoetryCreation:
		return "三·诗词创作"
	}
	return string(s)
}

func writeMetadata(gs *state.GameState) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("行囊") + "\n\n")

	content.WriteString("会话:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	content.WriteString(fmt.Sprintf("等级 %d · 经验 %d\n\n", gs.UserLevel, gs.UserExperience))

	if q := gs.Quest; q != nil {
		content.WriteString("西湖诗词任务:\n")
		content.WriteString("当前: " + stageLabel(q.CurrentStage) + "\n")
		content.WriteString(fmt.Sprintf("谜题 %d/%d\n", q.Riddle.Progress, q.Riddle.MaxProgress))
		content.WriteString(fmt.Sprintf("诗意值 %d · 文化积分 %d\n", q.Rewards.PoetryValue, q.Rewards.CulturePoints))
		var badges []string
		if q.Rewards.PoetryDoor {
			badges = append(badges, "诗之门")
		}
		if q.Rewards.PoetCard {
			badges = append(badges, "诗人卡")
		}
		if q.Rewards.WestLakeBadge {
			badges = append(badges, "西湖徽章")
		}
		if len(badges) > 0 {
			content.WriteString("奖励: " + strings.Join(badges, "、") + "\n")
		}
		content.WriteString("\n")
	}

	if env := gs.Environment; env != nil {
		content.WriteString("环境:\n")
		if env.Location != nil {
			content.WriteString(env.Location.City + "\n")
		}
		if env.Weather != nil {
			content.WriteString(env.Weather.Weather + " " + env.Weather.Temperature + "°C\n")
		}
		if env.Festival != "" {
			content.WriteString(env.Festival + "\n")
		}
		content.WriteString(env.Season + "\n\n")
	}

	content.WriteString(fmt.Sprintf("任务 %d · 藏品 %d\n\n", len(gs.Tasks), len(gs.NFTs)))

	content.WriteString("命令:\n")
	content.WriteString("• /help 帮助\n")
	content.WriteString("• /poets 诗人名录\n")
	content.WriteString("• /themes 创作主题\n")
	content.WriteString("• /env 刷新环境\n")
	content.WriteString("• /task 生成限时任务\n")
	content.WriteString("• Ctrl+C 退出\n")

	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.7) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.gameState))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0
			m.appendLog(logEntry{text: input})
			m.writeChatContent()
			return m, tea.Batch(m.sendQuestInput(input), progressTick())
		}

	case questMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog(logEntry{text: msg.err.Error(), isError: true})
		} else {
			m.gameState.Quest = msg.resp.Quest
			m.appendLog(m.describeQuestResult(msg.resp))
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case sessionMsg:
		if msg.err == nil && msg.gameState != nil {
			m.gameState = msg.gameState
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}

	case envMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog(logEntry{text: msg.err.Error(), isError: true})
		} else {
			m.gameState.Environment = msg.env
			desc := msg.env.Season
			if msg.env.Weather != nil {
				desc = msg.env.Weather.Weather + "，" + desc
			}
			if msg.env.Festival != "" {
				desc += "，正值" + msg.env.Festival
			}
			m.appendLog(logEntry{speaker: GuideName, text: "此刻" + desc + "。"})
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.writeChatContent()

	case taskMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog(logEntry{text: msg.err.Error(), isError: true})
		} else {
			m.appendLog(logEntry{
				speaker: GuideName,
				text:    fmt.Sprintf("新任务「%s」：%s（奖励：%s）", msg.task.Title, msg.task.Description, msg.task.Reward),
			})
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case copiedMsg:
		if msg.err != nil {
			m.appendLog(logEntry{text: "复制失败: " + msg.err.Error(), isError: true})
		} else {
			m.appendLog(logEntry{speaker: GuideName, text: "诗作已复制到剪贴板。"})
		}
		m.writeChatContent()

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// describeQuestResult turns one quest response into a guide line.
func (m *ConsoleUI) describeQuestResult(resp *handlers.QuestResponse) logEntry {
	switch {
	case resp.Answer != nil:
		text := resp.Answer.Reply
		if resp.Answer.Explanation != "" {
			text += "\n" + resp.Answer.Explanation
		}
		if resp.Answer.StageCompleted {
			text += "\n谜题已解，诗人探寻之路已开启。输入 /poets 查看诗人名录。"
		}
		return logEntry{speaker: GuideName, text: text}

	case resp.Intro != "":
		return logEntry{speaker: GuideName, text: resp.Intro}

	case resp.PoetReply != nil:
		text := resp.PoetReply.Reply
		if resp.PoetReply.StageCompleted {
			text += "\n诗人之缘已结，创作之门已开。输入 /themes 选择主题。"
		}
		return logEntry{speaker: GuideName, text: text}

	case resp.Draft != "":
		return logEntry{speaker: GuideName, text: "为你拟就一稿：\n" + resp.Draft + "\n满意则输入 /submit，也可直接输入你自己的诗句。"}

	case resp.Poem != nil:
		return logEntry{speaker: GuideName, text: fmt.Sprintf("《%s》得分 %d！西湖徽章已入行囊。\n%s", resp.Poem.Title, resp.Poem.AIScore, resp.Poem.Content)}

	default:
		return logEntry{speaker: GuideName, text: "好。"}
	}
}

// sendQuestInput routes free text to the quest operation the current stage
// expects.
func (m ConsoleUI) sendQuestInput(input string) tea.Cmd {
	req := handlers.QuestRequest{SessionID: m.gameState.ID}

	q := m.gameState.Quest
	switch {
	case q == nil || q.CurrentStage == quest.StagePoetryRiddle && q.Riddle.Status != quest.StatusCompleted:
		req.Action = "answer_riddle"
		req.Answer = input
	case q.CurrentStage == quest.StagePoetExploration:
		req.Action = "send_message"
		req.Message = input
	default:
		req.Action = "submit_poem"
		req.Content = input
	}

	return func() tea.Msg {
		resp, err := questAction(m.client, m.config.APIBaseURL, req)
		return questMsg{resp, err}
	}
}

func (m ConsoleUI) questCmd(req handlers.QuestRequest) tea.Cmd {
	req.SessionID = m.gameState.ID
	return func() tea.Msg {
		resp, err := questAction(m.client, m.config.APIBaseURL, req)
		return questMsg{resp, err}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		gs, err := getSession(m.client, m.config.APIBaseURL, m.gameState)
		return sessionMsg{gs, err}
	}
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	m.textarea.Reset()
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}

	switch cmd {
	case "/help":
		m.appendLog(logEntry{speaker: GuideName, text: `命令一览：
/poets          列出可探访的诗人
/poet <id>      选择诗人开始对话
/themes         列出创作主题
/theme <id>     选择创作主题
/keyword <词>   选取或取消关键词
/emotion <词>   选取或取消情感
/compose        由所选词句拟稿
/submit         提交当前诗稿
/copy           复制已完成的诗作
/env            刷新位置与天气
/task           生成环境限时任务
/reset          重新开始诗词任务`})
		m.writeChatContent()
		return m, nil

	case "/poets":
		var b strings.Builder
		b.WriteString("诗人名录：\n")
		for _, p := range m.gameState.Quest.Poet.Poets {
			b.WriteString(fmt.Sprintf("• %s（%s，%s）  /poet %s\n", p.Name, p.Dynasty, p.Description, p.ID))
		}
		m.appendLog(logEntry{speaker: GuideName, text: b.String()})
		m.writeChatContent()
		return m, nil

	case "/themes":
		var b strings.Builder
		b.WriteString("创作主题：\n")
		for _, th := range m.gameState.Quest.Creation.Themes {
			b.WriteString(fmt.Sprintf("• %s：%s  /theme %s\n", th.Name, th.Description, th.ID))
			b.WriteString("  关键词：" + strings.Join(th.Keywords, "、") + "\n")
			b.WriteString("  情感：" + strings.Join(th.Emotions, "、") + "\n")
		}
		m.appendLog(logEntry{speaker: GuideName, text: b.String()})
		m.writeChatContent()
		return m, nil

	case "/poet":
		m.loading = true
		m.writeChatContent()
		return m, tea.Batch(m.questCmd(handlers.QuestRequest{Action: "select_poet", PoetID: arg}), progressTick())

	case "/theme":
		m.loading = true
		m.writeChatContent()
		return m, tea.Batch(m.questCmd(handlers.QuestRequest{Action: "select_theme", ThemeID: arg}), progressTick())

	case "/keyword":
		return m, m.questCmd(handlers.QuestRequest{Action: "toggle_keyword", Keyword: arg})

	case "/emotion":
		return m, m.questCmd(handlers.QuestRequest{Action: "toggle_emotion", Emotion: arg})

	case "/compose":
		m.loading = true
		m.writeChatContent()
		return m, tea.Batch(m.questCmd(handlers.QuestRequest{Action: "compose_draft"}), progressTick())

	case "/submit":
		m.loading = true
		m.writeChatContent()
		return m, tea.Batch(m.questCmd(handlers.QuestRequest{Action: "submit_poem"}), progressTick())

	case "/reset":
		return m, m.questCmd(handlers.QuestRequest{Action: "reset"})

	case "/copy":
		poem := m.gameState.Quest.Creation.UserPoem
		if poem == nil {
			m.appendLog(logEntry{text: "还没有完成的诗作可复制", isError: true})
			m.writeChatContent()
			return m, nil
		}
		content := poem.Content
		return m, func() tea.Msg {
			return copiedMsg{err: clipboard.WriteAll(content)}
		}

	case "/env":
		m.loading = true
		m.writeChatContent()
		req := handlers.SessionRequest{SessionID: m.gameState.ID}
		return m, tea.Batch(func() tea.Msg {
			env, err := refreshEnvironment(m.client, m.config.APIBaseURL, req)
			return envMsg{env, err}
		}, progressTick())

	case "/task":
		m.loading = true
		m.writeChatContent()
		req := handlers.SessionRequest{SessionID: m.gameState.ID}
		return m, tea.Batch(func() tea.Msg {
			task, err := generateTask(m.client, m.config.APIBaseURL, req)
			return taskMsg{task, err}
		}, progressTick())

	default:
		m.appendLog(logEntry{text: "未知命令 " + cmd + "，/help 查看可用命令", isError: true})
		m.writeChatContent()
		return m, nil
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("离开地图？"))
	content.WriteString("\n\n")
	content.WriteString("确定要结束这次探索吗？")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Y 退出，N 继续，Ctrl+C 强制退出"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
