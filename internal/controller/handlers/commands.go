package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/schedule"
	"github.com/popcornbot/movienight/internal/tmdb"
)

// HandleAddMovie handles /addmovie: resolve the title on TMDb, then either
// add straight away (single match) or offer a disambiguation menu.
func (h *Handlers) HandleAddMovie(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	opts := optionMap(i.ApplicationCommandData().Options)
	name := opts["name"].StringValue()
	year := 0
	if opt, ok := opts["year"]; ok {
		year = int(opt.IntValue())
	}

	if !h.deferEphemeral(s, i) {
		return
	}

	results, err := h.watchlist.Search(ctx, name, year)
	if err != nil {
		h.logger.Error("movie search failed", zap.String("query", name), zap.Error(err))
		h.followup(s, i, "Movie search is unavailable right now, try again later.")
		return
	}

	switch {
	case len(results) == 0:
		h.followup(s, i, "No movies found with that name.")

	case len(results) == 1:
		h.addMovie(ctx, s, i, results[0].ID)

	default:
		h.sendMovieSelectionMenu(s, i, results, name)
	}
}

// addMovie adds a resolved TMDb movie, schedules its movie night and reports
// the outcome. The add sticks even when scheduling fails.
func (h *Handlers) addMovie(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, tmdbID int64) {
	movie, err := h.watchlist.AddByTMDBID(ctx, tmdbID)
	if movie == nil {
		h.logger.Error("add movie failed", zap.Int64("tmdb_id", tmdbID), zap.Error(err))
		h.followup(s, i, "Could not load movie data.")
		return
	}

	switch {
	case err == nil:
		h.followup(s, i, fmt.Sprintf("Added **%s** (%d) to the list!", movie.Title, movie.Year))
	case errors.Is(err, schedule.ErrNoSlotFound):
		h.followup(s, i, fmt.Sprintf(
			"Added **%s** (%d), but no free movie night slot was found.", movie.Title, movie.Year))
	default:
		h.logger.Error("scheduling failed", zap.String("title", movie.Title), zap.Error(err))
		h.followup(s, i, fmt.Sprintf(
			"Added **%s** (%d), but the movie night event could not be created.", movie.Title, movie.Year))
	}
}

func (h *Handlers) sendMovieSelectionMenu(s *discordgo.Session, i *discordgo.InteractionCreate, results []tmdb.SearchResult, query string) {
	options := make([]discordgo.SelectMenuOption, 0, maxSelectOptions)
	for idx, m := range results {
		if idx == maxSelectOptions {
			break
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("%s (%d)", m.Title, m.Year),
			Value: strconv.FormatInt(m.ID, 10),
		})
	}

	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: fmt.Sprintf("I found multiple results for **%s**:", query),
		Flags:   discordgo.MessageFlagsEphemeral,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						CustomID:    MovieSelectID,
						Placeholder: "Select the correct movie",
						Options:     options,
					},
				},
			},
		},
	})
	if err != nil {
		h.logger.Error("send movie selection menu", zap.Error(err))
	}
}

// HandleRemoveMovie handles /removemovie: remove the single match, or offer
// a menu when the query matches several watchlist entries.
func (h *Handlers) HandleRemoveMovie(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	query := optionMap(i.ApplicationCommandData().Options)["query"].StringValue()

	if !h.deferEphemeral(s, i) {
		return
	}

	matches, err := h.watchlist.Matches(ctx, query)
	if err != nil {
		h.logger.Error("watchlist lookup failed", zap.Error(err))
		h.followup(s, i, "Could not read the movie list, try again later.")
		return
	}

	switch {
	case len(matches) == 0:
		h.followup(s, i, fmt.Sprintf("I couldn't find any movies matching **%s**.", query))

	case len(matches) == 1:
		movie, err := h.watchlist.Remove(ctx, matches[0].ID)
		if err != nil {
			h.logger.Error("remove movie failed", zap.Error(err))
			h.followup(s, i, "Could not remove that movie, try again later.")
			return
		}
		h.followup(s, i, fmt.Sprintf("Removed **%s** from the movie list.", movie.Title))

	default:
		options := make([]discordgo.SelectMenuOption, 0, maxSelectOptions)
		for idx, m := range matches {
			if idx == maxSelectOptions {
				break
			}
			options = append(options, discordgo.SelectMenuOption{
				Label: fmt.Sprintf("%s (%d)", m.Title, m.Year),
				Value: "remove:" + m.ID.String(),
			})
		}

		_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: "I found multiple movies:",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							CustomID: RemoveSelectID,
							Options:  options,
						},
					},
				},
			},
		})
		if err != nil {
			h.logger.Error("send remove selection menu", zap.Error(err))
		}
	}
}

// HandleMovieList handles /movielist: the paginated list embed, starting on
// the "Next Up" page.
func (h *Handlers) HandleMovieList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	movies, err := h.watchlist.Movies(ctx)
	if err != nil {
		h.logger.Error("watchlist lookup failed", zap.Error(err))
		h.respondEphemeral(s, i, "Could not read the movie list, try again later.")
		return
	}

	if len(movies) == 0 {
		h.respond(s, i, "The movie list is currently empty.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{movieListEmbed(movies, 0)},
			Components: []discordgo.MessageComponent{pageButtons(movies, 0)},
		},
	})
	if err != nil {
		h.logger.Error("send movie list", zap.Error(err))
	}
}

// HandleMovieHelp handles /moviehelp.
func (h *Handlers) HandleMovieHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{helpEmbed()},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.logger.Error("send help", zap.Error(err))
	}
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func (h *Handlers) deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		h.logger.Error("defer interaction", zap.Error(err))
		return false
	}
	return true
}

func (h *Handlers) followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		h.logger.Error("send followup", zap.Error(err))
	}
}

func (h *Handlers) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		h.logger.Error("send response", zap.Error(err))
	}
}

func (h *Handlers) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.logger.Error("send response", zap.Error(err))
	}
}
