package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/popcornbot/movienight/internal/model"
)

const embedColor = 0x570000

// movieListEmbed renders one page of the movie list. Page 0 is the "Next Up"
// card for the first movie with its poster; later pages list pageSize movies
// each, starting from the second entry.
func movieListEmbed(movies []*model.Movie, page int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Movie List",
		Color: embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", page+1, totalPages(movies)),
		},
	}

	if len(movies) == 0 {
		embed.Description = "The list is empty."
		return embed
	}

	if page == 0 {
		next := movies[0]
		embed.Description = fmt.Sprintf("Next Up: %s (%d)", next.Title, next.Year)
		if next.PosterURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: next.PosterURL}
		}
		return embed
	}

	start := 1 + (page-1)*pageSize
	end := min(start+pageSize, len(movies))

	for i := start; i < end; i++ {
		m := movies[i]
		value := fmt.Sprintf("Year: %d", m.Year)
		if m.PosterURL != "" {
			value += fmt.Sprintf("\n[Poster](%s)", m.PosterURL)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s", i+1, m.Title),
			Value: value,
		})
	}

	return embed
}

// pageButtons builds the prev/next row for the given page, disabling buttons
// at the ends of the list.
func pageButtons(movies []*model.Movie, page int) discordgo.MessageComponent {
	pages := totalPages(movies)

	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: fmt.Sprintf("%sprev_%d", PageButtonPrefix, page),
				Label:    "◀ Previous",
				Style:    discordgo.PrimaryButton,
				Disabled: page == 0,
			},
			discordgo.Button{
				CustomID: fmt.Sprintf("%snext_%d", PageButtonPrefix, page),
				Label:    "Next ▶",
				Style:    discordgo.PrimaryButton,
				Disabled: page >= pages-1,
			},
		},
	}
}

// totalPages counts the "Next Up" page plus pageSize-sized pages for the
// remaining movies.
func totalPages(movies []*model.Movie) int {
	if len(movies) == 0 {
		return 1
	}
	rest := len(movies) - 1
	return 1 + (rest+pageSize-1)/pageSize
}

func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "MovieBot Help",
		Description: "Possible commands:",
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "MovieBot"},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "/addmovie",
				Value: "Adds a movie to the movie list.\n**Options:**\n" +
					"`name` (required) - Movie Title\n`year` (optional) - Release Year",
			},
			{
				Name:  "/removemovie",
				Value: "Removes a movie from the list using its name.\n**Options:**\n`query` (required) - Movie Title",
			},
			{
				Name:  "/movielist",
				Value: "Shows all movies currently in the list.",
			},
			{
				Name:  "/moviehelp",
				Value: "Displays this help message.",
			},
		},
	}
}
