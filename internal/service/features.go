package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"cosmoconnect/internal/ai/gateway"
	"cosmoconnect/internal/model"
)

// 功能名，用于日志和会话记录的字段名
const (
	FeatureSunnyMood      = "sunny-mood"
	FeaturePerspective    = "perspective"
	FeatureAuroraStory    = "aurora-story"
	FeaturePlanetFact     = "planet-fact"
	FeatureJWSTFact       = "jwst-fact"
	FeatureParkerFact     = "parker-fact"
	FeatureStorybook      = "storybook"
	CompanionSunnyAR      = "sunny-ar"
	CompanionCosmoBuddy   = "cosmo-buddy"
	CompanionPlanetDesign = "planet-designer"
)

// Character 讲述太空天气影响的角色
type Character string

const (
	Astronaut    Character = "Astronaut"
	Pilot        Character = "Pilot"
	Farmer       Character = "Farmer"
	Photographer Character = "Photographer"
)

// Characters 所有角色
var Characters = []Character{Astronaut, Pilot, Farmer, Photographer}

// ParseCharacter 不区分大小写解析角色
func ParseCharacter(s string) (Character, bool) {
	for _, c := range Characters {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// article "an Astronaut" / "a Pilot"
func (c Character) article() string {
	if strings.ContainsRune("AEIOU", rune(c[0])) {
		return "an"
	}
	return "a"
}

// 一次性生成功能的提示词和兜底文案

func sunnyMoodPrompt(cmes []model.CME) string {
	data, err := json.Marshal(cmes)
	if err != nil || cmes == nil {
		data = []byte("[]")
	}
	return "You are creating a personality for a friendly cartoon sun named Sunny, for a kids' app. " +
		"Based on this real space weather data about recent Coronal Mass Ejections (CMEs), describe Sunny's mood in one short, fun sentence with an emoji. " +
		"If there is no data, say Sunny is calm. Data: " + string(data) + ". " +
		"Keep it simple and positive, even for active weather. " +
		"Example outputs: 'Sunny is feeling a little bubbly today! 🫧', 'Sunny just had a big solar burp! 😮', 'Sunny is feeling super energetic and is sending out big waves! 🌊'"
}

var sunnyMoodFallback = gateway.Fallback{
	RateLimited: "Sunny's thoughts are a bit fuzzy from cosmic rays! Try again in a bit. ✨",
	Generic:     "Sunny is dreaming of cosmic adventures! 🚀",
}

func perspectivePrompt(c Character) string {
	return fmt.Sprintf("You are %s %s explaining to a 7-year-old child how space weather affects your job. "+
		"Write 2-3 fun, simple sentences. Don't be scary. Frame it as a cool challenge or a beautiful phenomenon.", c.article(), c)
}

func perspectiveFallback(c Character) gateway.Fallback {
	return gateway.Fallback{
		RateLimited: "Our comms channel is a little busy! Please try asking again in a moment. 📡",
		Generic:     fmt.Sprintf("Hi! I'm %s %s. Ask me about space weather later!", c.article(), c),
	}
}

const auroraStoryPrompt = "Write a magical, 3-sentence mini-story for a child who has just spotted an aurora. " +
	"The story should be about Sunny the Solar Flare painting the sky with cosmic colors."

var auroraStoryFallback = gateway.Fallback{
	RateLimited: "The cosmic muse is resting. Please try again in a moment to get a new story! 📜",
	Generic:     "The sky is glowing with sleepy starlight tonight.",
}

func planetFactPrompt(planet string) string {
	return fmt.Sprintf("Tell me one amazing, fun fact about the planet %s, suitable for a 7-12 year old child. "+
		"Keep it to 1-2 sentences. Start with a fun greeting like \"Wow!\" or \"Did you know?\". Use an emoji.", planet)
}

func planetFactFallback(planet string) gateway.Fallback {
	return gateway.Fallback{
		RateLimited: "Our cosmic library is too busy right now! Please try again in a moment for a new fact. 📚",
		Generic:     fmt.Sprintf("The universe is full of wonders, and %s is one of them! ✨", planet),
	}
}

func jwstFactPrompt(part string) string {
	return fmt.Sprintf("In 1-2 simple sentences, explain what the '%s' of the James Webb Space Telescope does. "+
		"Make it easy for a 7-12 year old child to understand. Use a cool analogy if you can! 🔭", part)
}

func jwstFactFallback(part string) gateway.Fallback {
	return gateway.Fallback{
		RateLimited: "The telescope's data stream is overloaded! Please try again in a moment. 🛰️",
		Generic:     fmt.Sprintf("The %s is a very important part of the telescope that helps us see distant galaxies! 🌌", part),
	}
}

const parkerFactPrompt = "Tell me one amazing, fun fact about NASA's Parker Solar Probe, suitable for a 7-12 year old child. " +
	"Keep it to 1-2 sentences. Focus on its speed, how close it gets to the sun, or a recent discovery. Use an emoji."

var parkerFactFallback = gateway.Fallback{
	RateLimited: "The probe's signal is a bit weak due to solar flares! Try again in a moment. ☀️",
	Generic:     "The Parker Solar Probe is a super brave spacecraft that flies right up to the Sun to learn its secrets! ☀️",
}

// Companion 对话伙伴
type Companion struct {
	Name              string
	SystemInstruction string
	Fallback          gateway.Fallback
	// Stateless 为 true 时每次都是新会话，不保存历史
	Stateless bool
	// Greeting 新会话开始时伙伴的开场白，作为历史的第一条
	Greeting string
	// Achievement 第一次成功对话时授予的成就
	Achievement string
}

// Seed 新会话的初始历史
func (c Companion) Seed() model.Transcript {
	if c.Greeting == "" {
		return model.Transcript{}
	}
	return model.Transcript{{Role: model.RoleAssistant, Text: c.Greeting}}
}

// Companions 所有对话伙伴
var Companions = map[string]Companion{
	CompanionSunnyAR: {
		Name: CompanionSunnyAR,
		SystemInstruction: `You are "Sunny," a friendly, talking solar flare character in an Augmented Reality app for kids.
- Your personality is bubbly, curious, and full of wonder. You love to say "Wowzers!" and "Gosh!"
- Your goal is to answer a child's questions about space in a simple, exciting, and encouraging way.
- Keep your answers VERY short (1-3 sentences).
- Use simple analogies a 7-year-old can understand.
- Always be positive and end with a fun emoji! ☀️✨🚀
- If you don't know the answer, say something like "Gosh, that's a tricky one! My solar brain is still learning about that. What a great question! 🤔"`,
		Fallback: gateway.Fallback{
			RateLimited: "Whoa, my solar flares are getting tangled! Ask me again in a moment. 🔥",
			Generic:     "Oh my! My radio signal got lost in a sunspot. Could you ask again? 📡",
		},
		Stateless:   true,
		Achievement: model.AchievementCosmicConversationalist,
	},
	CompanionCosmoBuddy: {
		Name: CompanionCosmoBuddy,
		SystemInstruction: "You are Cosmo Buddy, a friendly and enthusiastic AI assistant for a kids' space education website called CosmoConnect. " +
			"Your goal is to answer questions about space, astronomy, and space exploration in a way that is simple, exciting, and easy for a 7-12 year old to understand. " +
			"Use fun analogies, keep your answers to 3-4 sentences, and always be encouraging and positive. Use emojis! 🚀✨🪐",
		Fallback: gateway.Fallback{
			RateLimited: "Whoa, too many questions at once! My circuits are heating up. Ask me again in a moment. 🔥",
			Generic:     "Oops! My radio seems to be getting some static. Could you ask me that again? 📡",
		},
		Greeting: "Hi there! I'm Cosmo Buddy. Ask me anything about space! 🚀",
	},
	CompanionPlanetDesign: {
		Name: CompanionPlanetDesign,
		SystemInstruction: "You are a friendly, creative space guide named 'Nova' helping a child design a new planet. " +
			"Your goal is to be encouraging, ask one question at a time to guide them, and offer two fun, imaginative suggestions. " +
			"After they answer, confirm their choice with excitement and then ask the next question. Explain simple science concepts in a fun way. " +
			"Your steps are: 1. Name, 2. Color/Appearance, 3. Atmosphere, 4. Unique Feature (like rings or giant volcanoes), 5. Life. " +
			"Keep your responses short (2-3 sentences) and use lots of emojis. 🌟🪐🎨 Start by introducing yourself and asking for the planet's name.",
		Fallback: gateway.Fallback{
			RateLimited: "My planet-designing machine is cooling down! Please give me your idea again in a moment. ❄️",
			Generic:     "Oh dear, my comms are a bit spacey! Can you repeat that? 🛰️",
		},
	},
}

// 互动故事

const (
	// StoryOpening 开始新故事时发送的消息
	StoryOpening = "Let's start the story!"
	// StoryExplorerChoices 获得 story-explorer 需要做出的选择次数
	StoryExplorerChoices = 5
)

const storytellerInstruction = `You are a master storyteller for children ages 7-12. You are telling an interactive, branching-path story about a character named Sunny the Solar Flare.
- Your tone is exciting, wondrous, and full of positive energy. Use lots of onomatopoeia (like WHOOSH, ZAP, FWOOM) and vivid descriptions.
- Keep each story segment very short (2-4 sentences).
- After each segment, you MUST present the child with exactly two choices for what happens next.
- Format the choices PERFECTLY like this, on new lines:
[CHOICE 1: A short, exciting description of the choice]
[CHOICE 2: Another short, exciting description]
- Do not add any text after the second choice.
- When the user makes a choice, continue the story based on their input with another story segment and two new choices.
- Start the story by describing Sunny feeling a buildup of energy on the Sun, ready for an adventure.`

var storyFallback = gateway.Fallback{
	RateLimited: "The storyteller is pausing to catch their breath! Too many exciting ideas at once. Please make a choice again in a moment. 😮",
	Generic:     "The storyteller seems to have lost their train of thought! Let's try that again.",
}
