package discord

import (
	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/bwmarrin/discordgo"
)

// BackgroundRandom picks one of the other backgrounds
const BackgroundRandom = "random"

// Backgrounds are the image backgrounds a pinned render can carry
var Backgrounds = []string{
	"babeplease",
	"chad",
	"criticallowbrain",
	"furry",
	"girls",
	"guyatparty",
	"japmic",
	"iphone",
	"nerd",
	"nobitches",
	"npc",
	BackgroundRandom,
	"receives",
	"shutup",
	"simp",
	"smolbrain",
	"yap",
}

// ResolveBackground returns a concrete background, or "" when name is unknown
func ResolveBackground(name string, rnd random.Source) string {
	if name == BackgroundRandom {
		concrete := make([]string, 0, len(Backgrounds)-1)
		for _, bg := range Backgrounds {
			if bg != BackgroundRandom {
				concrete = append(concrete, bg)
			}
		}
		return concrete[rnd.Intn(len(concrete))]
	}

	for _, bg := range Backgrounds {
		if bg == name {
			return name
		}
	}
	return ""
}

// backgroundChoices lists the backgrounds as slash command choices
func backgroundChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Backgrounds))
	for _, bg := range Backgrounds {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  bg,
			Value: bg,
		})
	}
	return choices
}
