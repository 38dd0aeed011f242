package state

import "time"

// Seed content for a fresh session: four cities and their sub-locations,
// the static task board, achievements, events and starting friends.

func seedLocations() []Location {
	return []Location{
		{
			ID: "beijing", Name: "北京", Category: LocationCity, Unlocked: true,
			X: 50, Y: 30,
			Description:  "千年古都，明清两朝的政治中心",
			Tasks:        []string{"explore_beijing_culture"},
			Events:       []string{"beijing_festival"},
			IsCity:       true,
			SubLocations: []string{"forbidden_city", "temple_heaven", "summer_palace", "great_wall"},
		},
		{
			ID: "hangzhou", Name: "杭州", Category: LocationCity,
			X: 20, Y: 70,
			Description:  "人间天堂，诗人墨客的灵感源泉",
			Tasks:        []string{"explore_hangzhou_culture"},
			Events:       []string{"west_lake_festival"},
			IsCity:       true,
			SubLocations: []string{"west_lake", "lingyin_temple", "leifeng_pagoda"},
		},
		{
			ID: "shanghai", Name: "上海", Category: LocationCity,
			X: 80, Y: 60,
			Description:  "东方明珠，现代与传统的完美融合",
			Tasks:        []string{"explore_shanghai_culture"},
			Events:       []string{"shanghai_festival"},
			IsCity:       true,
			SubLocations: []string{"yuyuan_garden", "bund_area", "zhujiajiao"},
		},
		{
			ID: "nanjing", Name: "南京", Category: LocationCity,
			X: 60, Y: 50,
			Description:  "六朝古都，历史文化名城",
			Tasks:        []string{"explore_nanjing_culture"},
			Events:       []string{"nanjing_festival"},
			IsCity:       true,
			SubLocations: []string{"ming_xiaoling", "confucius_temple", "qinhuai_river"},
		},

		{
			ID: "forbidden_city", Name: "紫禁城", Category: LocationPalace, Unlocked: true,
			X: 50, Y: 30,
			Description: "明清两朝的皇家宫殿，承载着五百年的历史沧桑",
			Tasks:       []string{"explore_throne_room", "learn_palace_history"},
			Events:      []string{"imperial_ceremony"},
			ParentCity:  "beijing",
			GuideInfo: &GuideInfo{
				Introduction: "紫禁城，又称故宫，是明清两朝的皇家宫殿，位于北京中轴线的中心。这座宏伟的建筑群占地72万平方米，拥有9999间房屋，是世界上现存规模最大、保存最为完整的木质结构古建筑群。",
				ExplorationTips: []string{
					"建议从午门进入，这是皇帝专用的入口",
					"太和殿是必看景点，这里是皇帝举行大典的地方",
					"可以租借语音导览器，了解每个宫殿的历史故事",
					"建议穿舒适的鞋子，因为需要走很多路",
					"避开节假日，人流量会很大",
				},
				Highlights: []string{
					"太和殿：皇帝登基和举行大典的地方",
					"乾清宫：皇帝的寝宫",
					"御花园：皇家园林，四季景色各异",
					"珍宝馆：收藏着历代皇家珍宝",
				},
				BestTime: "春秋两季，天气宜人",
				Duration: "建议游览时间：4-6小时",
			},
		},
		{
			ID: "temple_heaven", Name: "天坛", Category: LocationTemple,
			X: 70, Y: 60,
			Description: "皇帝祭天的神圣之地，体现了古代天人合一的思想",
			Tasks:       []string{"prayer_ritual", "understand_cosmology"},
			Events:      []string{"spring_prayer"},
			ParentCity:  "beijing",
		},
		{
			ID: "summer_palace", Name: "颐和园", Category: LocationGarden,
			X: 30, Y: 20,
			Description: "清朝皇家园林，山水相依的人间仙境",
			Tasks:       []string{"boat_tour", "garden_poetry"},
			Events:      []string{"lotus_festival"},
			ParentCity:  "beijing",
		},
		{
			ID: "great_wall", Name: "万里长城", Category: LocationMountain,
			X: 80, Y: 10,
			Description: "中华民族的象征，见证了千年的风雨沧桑",
			Tasks:       []string{"wall_exploration", "defense_strategy"},
			Events:      []string{"beacon_lighting"},
			ParentCity:  "beijing",
		},

		{
			ID: "west_lake", Name: "西湖", Category: LocationRiver,
			X: 20, Y: 70,
			Description: "人间天堂，诗人墨客的灵感源泉",
			Tasks:       []string{"lake_cruise", "poetry_composition"},
			Events:      []string{"moon_viewing"},
			ParentCity:  "hangzhou",
		},
		{
			ID: "lingyin_temple", Name: "灵隐寺", Category: LocationTemple,
			X: 15, Y: 75,
			Description: "千年古刹，佛教文化的重要圣地",
			Tasks:       []string{"temple_meditation", "buddhist_study"},
			Events:      []string{"buddha_birthday"},
			ParentCity:  "hangzhou",
		},
		{
			ID: "leifeng_pagoda", Name: "雷峰塔", Category: LocationTemple,
			X: 25, Y: 65,
			Description: "白蛇传说的发源地，西湖十景之一",
			Tasks:       []string{"pagoda_climb", "legend_study"},
			Events:      []string{"legend_festival"},
			ParentCity:  "hangzhou",
		},

		{
			ID: "yuyuan_garden", Name: "豫园", Category: LocationGarden,
			X: 80, Y: 60,
			Description: "明代古典园林，江南园林的代表作",
			Tasks:       []string{"garden_walk", "architecture_study"},
			Events:      []string{"lantern_festival"},
			ParentCity:  "shanghai",
		},
		{
			ID: "bund_area", Name: "外滩", Category: LocationPalace,
			X: 85, Y: 55,
			Description: "万国建筑博览群，上海的历史见证",
			Tasks:       []string{"architecture_tour", "history_study"},
			Events:      []string{"night_view"},
			ParentCity:  "shanghai",
		},
		{
			ID: "zhujiajiao", Name: "朱家角", Category: LocationVillage,
			X: 75, Y: 65,
			Description: "江南水乡古镇，小桥流水人家",
			Tasks:       []string{"water_town_tour", "local_culture"},
			Events:      []string{"water_festival"},
			ParentCity:  "shanghai",
		},

		{
			ID: "ming_xiaoling", Name: "明孝陵", Category: LocationPalace,
			X: 60, Y: 50,
			Description: "明朝开国皇帝朱元璋的陵墓",
			Tasks:       []string{"tomb_exploration", "history_study"},
			Events:      []string{"memorial_ceremony"},
			ParentCity:  "nanjing",
		},
		{
			ID: "confucius_temple", Name: "夫子庙", Category: LocationTemple,
			X: 65, Y: 45,
			Description: "儒家文化圣地，科举考试的重要场所",
			Tasks:       []string{"confucian_study", "exam_history"},
			Events:      []string{"confucius_birthday"},
			ParentCity:  "nanjing",
		},
		{
			ID: "qinhuai_river", Name: "秦淮河", Category: LocationRiver,
			X: 55, Y: 55,
			Description: "六朝金粉地，十里秦淮河",
			Tasks:       []string{"river_cruise", "poetry_study"},
			Events:      []string{"lantern_festival"},
			ParentCity:  "nanjing",
		},
	}
}

func seedTasks() []Task {
	return []Task{
		{
			ID: "explore_throne_room", Title: "探索太和殿",
			Description: "深入了解紫禁城的心脏——太和殿的历史和建筑特色",
			Status:      TaskNotStarted, MaxProgress: 100,
			Reward: "获得\"宫廷探索者\"徽章", LocationID: "forbidden_city",
			Category: TaskExploration,
		},
		{
			ID: "learn_palace_history", Title: "宫廷历史学习",
			Description: "学习明清两朝在紫禁城发生的重要历史事件",
			Status:      TaskNotStarted, MaxProgress: 50,
			Reward: "历史知识点数 +100", LocationID: "forbidden_city",
			Category: TaskKnowledge,
		},
		{
			ID: "prayer_ritual", Title: "祭天仪式",
			Description: "参与古代皇帝的祭天仪式，了解传统文化",
			Status:      TaskNotStarted, MaxProgress: 1,
			Reward: "获得\"天子之礼\"成就", TimeLimit: Duration(time.Hour),
			LocationID: "temple_heaven", Category: TaskExploration,
			IsLimitedTime: true,
		},
		{
			ID: "explore_beijing_culture", Title: "北京文化探索",
			Description: "深入了解北京的历史文化和传统习俗",
			Status:      TaskNotStarted, MaxProgress: 80,
			Reward: "获得\"北京通\"称号", LocationID: "beijing",
			Category: TaskKnowledge,
		},
		{
			ID: "lake_cruise", Title: "西湖游船",
			Description: "乘坐游船欣赏西湖美景，体验江南水乡风情",
			Status:      TaskNotStarted, MaxProgress: 60,
			Reward: "获得\"西湖诗人\"徽章", LocationID: "west_lake",
			Category: TaskExploration,
		},
		{
			ID: "poetry_composition", Title: "诗词创作",
			Description: "在西湖美景的启发下创作古诗词",
			Status:      TaskNotStarted, MaxProgress: 40,
			Reward: "文学点数 +80", LocationID: "west_lake",
			Category: TaskKnowledge,
		},
		{
			ID: "explore_hangzhou_culture", Title: "杭州文化探索",
			Description: "了解杭州的历史文化和人文风情",
			Status:      TaskNotStarted, MaxProgress: 70,
			Reward: "获得\"杭州通\"称号", LocationID: "hangzhou",
			Category: TaskKnowledge,
		},
		{
			ID: "garden_walk", Title: "豫园漫步",
			Description: "在豫园中漫步，欣赏江南园林的精美设计",
			Status:      TaskNotStarted, MaxProgress: 50,
			Reward: "获得\"园林鉴赏家\"徽章", LocationID: "yuyuan_garden",
			Category: TaskExploration,
		},
		{
			ID: "architecture_tour", Title: "外滩建筑之旅",
			Description: "参观外滩的万国建筑群，了解上海的历史变迁",
			Status:      TaskNotStarted, MaxProgress: 60,
			Reward: "建筑知识 +90", LocationID: "bund_area",
			Category: TaskKnowledge,
		},
		{
			ID: "explore_shanghai_culture", Title: "上海文化探索",
			Description: "了解上海的海派文化和现代都市风情",
			Status:      TaskNotStarted, MaxProgress: 75,
			Reward: "获得\"上海通\"称号", LocationID: "shanghai",
			Category: TaskKnowledge,
		},
		{
			ID: "tomb_exploration", Title: "明孝陵探秘",
			Description: "探索明孝陵，了解明朝皇陵的建筑特色",
			Status:      TaskNotStarted, MaxProgress: 70,
			Reward: "获得\"陵墓探索者\"徽章", LocationID: "ming_xiaoling",
			Category: TaskExploration,
		},
		{
			ID: "confucian_study", Title: "儒家文化学习",
			Description: "在夫子庙学习儒家文化和科举制度",
			Status:      TaskNotStarted, MaxProgress: 55,
			Reward: "儒家知识 +85", LocationID: "confucius_temple",
			Category: TaskKnowledge,
		},
		{
			ID: "explore_nanjing_culture", Title: "南京文化探索",
			Description: "了解南京的六朝古都文化和历史底蕴",
			Status:      TaskNotStarted, MaxProgress: 65,
			Reward: "获得\"南京通\"称号", LocationID: "nanjing",
			Category: TaskKnowledge,
		},

		{
			ID: "spring_festival_task", Title: "春节文化体验",
			Description: "体验传统春节文化，学习年俗知识",
			Status:      TaskNotStarted, MaxProgress: 1,
			Reward: "获得\"春节使者\"称号", TimeLimit: Duration(24 * time.Hour),
			LocationID: "beijing", Category: TaskSocial,
			IsLimitedTime: true,
		},
		{
			ID: "mid_autumn_festival", Title: "中秋赏月",
			Description: "在西湖边赏月，体验中秋传统文化",
			Status:      TaskNotStarted, MaxProgress: 1,
			Reward: "获得\"月下诗人\"徽章", TimeLimit: Duration(12 * time.Hour),
			LocationID: "west_lake", Category: TaskSocial,
			IsLimitedTime: true,
		},
		{
			ID: "national_day_celebration", Title: "国庆庆典",
			Description: "参与国庆庆典活动，感受爱国情怀",
			Status:      TaskNotStarted, MaxProgress: 1,
			Reward: "获得\"爱国者\"徽章", TimeLimit: Duration(48 * time.Hour),
			LocationID: "beijing", Category: TaskSocial,
			IsLimitedTime: true,
		},
		{
			ID: "rainy_day_exploration", Title: "雨中探索",
			Description: "在雨天探索古建筑，体验不同的文化氛围",
			Status:      TaskNotStarted, MaxProgress: 1,
			Reward: "获得\"雨行者\"称号", TimeLimit: Duration(6 * time.Hour),
			LocationID: "yuyuan_garden", Category: TaskExploration,
			IsLimitedTime: true,
		},
	}
}

func seedAchievements() []Achievement {
	return []Achievement{
		{
			ID: "first_exploration", Title: "初次探索",
			Description: "完成第一个探索任务", Icon: "🗺️",
			MaxProgress: 1, Reward: "探索者称号", Category: AchievementExploration,
		},
		{
			ID: "knowledge_seeker", Title: "求知者",
			Description: "完成10个知识类任务", Icon: "📚",
			MaxProgress: 10, Reward: "智慧光环", Category: AchievementTasks,
		},
		{
			ID: "social_butterfly", Title: "社交达人",
			Description: "添加5个好友", Icon: "👥",
			MaxProgress: 5, Reward: "人气徽章", Category: AchievementSocial,
		},
		{
			ID: "time_traveler", Title: "时空旅者",
			Description: "连续7天登录", Icon: "⏰",
			MaxProgress: 7, Reward: "时间宝石", Category: AchievementTime,
		},
	}
}

func seedEvents() []DynamicEvent {
	return []DynamicEvent{
		{
			ID: "imperial_ceremony", Title: "皇家典礼",
			Description:   "参与盛大的皇家典礼，体验古代宫廷文化",
			TimeRemaining: Duration(2 * time.Hour),
			Reward:        "皇家荣誉勋章",
			Participants:  23, MaxParticipants: 100,
			Category: EventFestival,
		},
		{
			ID: "ancient_discovery", Title: "古物发现",
			Description:   "考古学家在古村落发现了神秘文物",
			TimeRemaining: Duration(time.Hour),
			Reward:        "考古学家称号",
			Participants:  8, MaxParticipants: 20,
			Category: EventDiscovery,
		},
	}
}

func seedFriends() []Friend {
	return []Friend{
		{
			ID: "friend1", UserName: "古韵诗人", Avatar: "👨‍🎓",
			Level: 12, LastActive: "2小时前",
			Achievements: 15, TasksCompleted: 23,
		},
		{
			ID: "friend2", UserName: "墨香才女", Avatar: "👩‍🎨",
			Level: 8, LastActive: "1天前",
			Achievements: 8, TasksCompleted: 12,
		},
	}
}
