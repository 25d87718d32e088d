package controller

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/controller/handlers"
	"github.com/popcornbot/movienight/internal/service"
)

// BotController owns the Discord session: it registers the slash commands,
// routes interactions to the handlers and manages the gateway connection.
type BotController struct {
	session  *discordgo.Session
	guildID  string
	handlers *handlers.Handlers
	logger   *zap.Logger
}

// NewBotController wires the controller.
func NewBotController(
	session *discordgo.Session,
	guildID string,
	watchlist *service.WatchlistService,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		session:  session,
		guildID:  guildID,
		handlers: handlers.New(watchlist, logger),
		logger:   logger,
	}
}

// Start opens the gateway connection, registers the interaction router and
// overwrites the guild's slash commands.
func (c *BotController) Start() error {
	c.session.Identify.Intents = discordgo.IntentsGuilds

	c.session.AddHandler(c.handleInteraction)

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	if err := c.session.UpdateWatchStatus(0, "/movielist"); err != nil {
		c.logger.Warn("set watching status", zap.Error(err))
	}

	_, err := c.session.ApplicationCommandBulkOverwrite(
		c.session.State.User.ID,
		c.guildID,
		commandDefinitions(),
	)
	if err != nil {
		return fmt.Errorf("register slash commands: %w", err)
	}

	c.logger.Info("bot is running", zap.String("guild_id", c.guildID))
	return nil
}

// Stop closes the gateway connection.
func (c *BotController) Stop() error {
	return c.session.Close()
}

func (c *BotController) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "addmovie":
			c.handlers.HandleAddMovie(s, i)
		case "removemovie":
			c.handlers.HandleRemoveMovie(s, i)
		case "movielist":
			c.handlers.HandleMovieList(s, i)
		case "moviehelp":
			c.handlers.HandleMovieHelp(s, i)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case customID == handlers.MovieSelectID:
			c.handlers.HandleMovieSelect(s, i)
		case customID == handlers.RemoveSelectID:
			c.handlers.HandleRemoveSelect(s, i)
		case strings.HasPrefix(customID, handlers.PageButtonPrefix):
			c.handlers.HandlePageButton(s, i)
		}
	}
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "addmovie",
			Description: "Adds a movie to the list",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Movie title",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "year",
					Description: "Release year",
					Required:    false,
				},
			},
		},
		{
			Name:        "removemovie",
			Description: "Removes a movie from the list",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Part of the movie name",
					Required:    true,
				},
			},
		},
		{
			Name:        "movielist",
			Description: "Shows the movie list",
		},
		{
			Name:        "moviehelp",
			Description: "Displays command help for the Movie Bot",
		},
	}
}
