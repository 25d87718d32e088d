package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleMovieSelect resolves a pick from the TMDb disambiguation menu and
// adds the chosen movie.
func (h *Handlers) HandleMovieSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	tmdbID, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		h.logger.Error("bad movie select value", zap.String("value", values[0]))
		return
	}

	if !h.deferEphemeral(s, i) {
		return
	}

	h.addMovie(ctx, s, i, tmdbID)
}

// HandleRemoveSelect removes the movie picked from the removal menu.
func (h *Handlers) HandleRemoveSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(values[0], "remove:"))
	if err != nil {
		h.logger.Error("bad remove select value", zap.String("value", values[0]))
		return
	}

	if !h.deferEphemeral(s, i) {
		return
	}

	movie, err := h.watchlist.Remove(ctx, id)
	if err != nil {
		h.logger.Error("remove movie failed", zap.Error(err))
		h.followup(s, i, "That movie no longer exists.")
		return
	}

	h.followup(s, i, "Removed **"+movie.Title+"**.")
}

// HandlePageButton flips the movie list embed to the previous or next page.
// Button ids carry the current page: "movie_page_prev_2", "movie_page_next_0".
func (h *Handlers) HandlePageButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	parts := strings.Split(i.MessageComponentData().CustomID, "_")
	if len(parts) != 4 {
		return
	}
	action := parts[2]
	currentPage, err := strconv.Atoi(parts[3])
	if err != nil {
		return
	}

	movies, err := h.watchlist.Movies(ctx)
	if err != nil {
		h.logger.Error("watchlist lookup failed", zap.Error(err))
		return
	}

	pages := totalPages(movies)
	newPage := currentPage
	if action == "prev" {
		newPage = max(0, currentPage-1)
	} else {
		newPage = min(pages-1, currentPage+1)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{movieListEmbed(movies, newPage)},
			Components: []discordgo.MessageComponent{pageButtons(movies, newPage)},
		},
	})
	if err != nil {
		h.logger.Error("update movie list page", zap.Error(err))
	}
}
