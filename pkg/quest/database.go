package quest

import "time"

// Character is the AI guide who fronts the quest dialogue.
type Character struct {
	ID            string
	Name          string
	Title         string
	Personality   string
	Avatar        string
	Greetings     []string
	Correct       []string
	Incorrect     []string
	Encouragement []string
}

// YinFeng is the quest's spirit-guide persona.
var YinFeng = Character{
	ID:          "yin_feng",
	Name:        "吟风",
	Title:       "西湖诗灵",
	Personality: "温文尔雅，博学多才，善于引导和启发",
	Avatar:      "🌸",
	Greetings: []string{
		"听闻你心向西湖，可识这湖光山色下的诗意？",
		"西湖之美，在于诗意，你准备好了吗？",
		"让我们一同探索西湖的诗意世界",
	},
	Correct: []string{
		"妙哉！你已听懂西湖的风声",
		"诗心相通，你果然有诗人的天赋",
		"西湖的诗意在你心中流淌",
	},
	Incorrect: []string{
		"似乎少了几分荷香，再想想？",
		"诗意的路上需要更多的感悟",
		"让我们重新品味这诗句的韵味",
	},
	Encouragement: []string{
		"不要灰心，诗意的探索需要耐心",
		"每一次尝试都是对诗意的理解",
		"西湖的诗意永远为你敞开",
	},
}

var riddles = []Riddle{
	{
		ID:            "riddle_1",
		Question:      "欲把西湖比西子，——",
		CorrectAnswer: "淡妆浓抹总相宜",
		Alternatives:  []string{"浓妆淡抹总相宜", "淡妆浓抹总相宜"},
		Hint:          "这是苏轼的名句，形容西湖的美貌",
		Explanation:   "苏轼在《饮湖上初晴后雨》中将西湖比作西施，无论淡妆还是浓妆都很美",
	},
	{
		ID:            "riddle_2",
		Question:      "接天莲叶无穷碧，——",
		CorrectAnswer: "映日荷花别样红",
		Alternatives:  []string{"映日荷花别样红"},
		Hint:          "杨万里的诗句，描写荷花在阳光下的美丽",
		Explanation:   "杨万里《晓出净慈寺送林子方》中的名句，描绘了西湖荷花的壮丽景色",
	},
	{
		ID:            "riddle_3",
		Question:      "山外青山楼外楼，——",
		CorrectAnswer: "西湖歌舞几时休",
		Alternatives:  []string{"西湖歌舞几时休"},
		Hint:          "林升的诗句，表达了对南宋偏安的感慨",
		Explanation:   "林升《题临安邸》中的名句，讽刺了南宋朝廷的醉生梦死",
	},
}

var poets = []Poet{
	{
		ID:            "poet_sushi",
		Name:          "苏轼",
		Dynasty:       "北宋",
		Description:   "字子瞻，号东坡居士，北宋文学家、书画家",
		WestLakePoems: []string{"饮湖上初晴后雨", "六月二十七日望湖楼醉书"},
		KeyClues:      []string{"饮湖上初晴后雨", "淡妆浓抹总相宜", "东坡居士"},
		Personality:   "豪放洒脱，热爱自然，善于发现生活中的美",
	},
	{
		ID:            "poet_bai_juyi",
		Name:          "白居易",
		Dynasty:       "唐代",
		Description:   "字乐天，号香山居士，唐代现实主义诗人",
		WestLakePoems: []string{"钱塘湖春行", "西湖晚归回望孤山寺赠诸客"},
		KeyClues:      []string{"钱塘湖春行", "最爱湖东行不足", "香山居士"},
		Personality:   "关注民生，热爱自然，诗歌通俗易懂",
	},
	{
		ID:            "poet_yang_wanli",
		Name:          "杨万里",
		Dynasty:       "南宋",
		Description:   "字廷秀，号诚斋，南宋诗人",
		WestLakePoems: []string{"晓出净慈寺送林子方", "西湖晚归"},
		KeyClues:      []string{"晓出净慈寺送林子方", "接天莲叶无穷碧", "诚斋"},
		Personality:   "清新自然，善于描写田园风光，语言生动活泼",
	},
}

var themes = []Theme{
	{
		ID:          "theme_sunny",
		Name:        "晴日西湖",
		Description: "阳光明媚的西湖，波光粼粼，游人如织",
		Keywords:    []string{"阳光", "波光", "游船", "柳絮", "荷花"},
		Emotions:    []string{"愉悦", "闲适", "赞美", "欣赏"},
		Examples:    []string{"欲把西湖比西子，淡妆浓抹总相宜"},
	},
	{
		ID:          "theme_rainy",
		Name:        "烟雨西湖",
		Description: "细雨蒙蒙的西湖，如诗如画，意境深远",
		Keywords:    []string{"细雨", "烟波", "朦胧", "诗意", "意境"},
		Emotions:    []string{"思念", "忧郁", "浪漫", "怀古"},
		Examples:    []string{"山色空蒙雨亦奇"},
	},
	{
		ID:          "theme_night",
		Name:        "夜泊西湖",
		Description: "夜晚的西湖，宁静致远，月影婆娑",
		Keywords:    []string{"月光", "夜色", "宁静", "月影", "星光"},
		Emotions:    []string{"宁静", "思念", "孤独", "感悟"},
		Examples:    []string{"月落乌啼霜满天，江枫渔火对愁眠"},
	},
}

const (
	riddleMaxProgress   = 2
	poetMaxProgress     = 1
	creationMaxProgress = 1
)

// NewTask builds the quest in its initial state: riddle stage open, the
// later stages locked, rewards zeroed.
func NewTask(now time.Time) *Task {
	return &Task{
		ID:           "west_lake_poetry_task",
		Title:        "西湖诗词创作",
		Description:  "通过AI互动式问答与创作，了解西湖相关的诗词、诗人及文化背景",
		LocationID:   "west_lake",
		CurrentStage: StagePoetryRiddle,
		Riddle: RiddleStage{
			Status:      StatusNotStarted,
			MaxProgress: riddleMaxProgress,
			Riddles:     riddles,
		},
		Poet: PoetStage{
			Status:          StatusLocked,
			MaxProgress:     poetMaxProgress,
			Poets:           poets,
			DiscoveredClues: []string{},
		},
		Creation: CreationStage{
			Status:      StatusLocked,
			MaxProgress: creationMaxProgress,
			Themes:      themes,
		},
		CreatedAt: now,
	}
}
