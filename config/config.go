package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AdrienDelgado/SantoriniAI/game"
	"github.com/AdrienDelgado/SantoriniAI/meta"
	"github.com/AdrienDelgado/SantoriniAI/searcher/agent"
)

// Player configures one seat of the game.
type Player struct {
	Name       string        `yaml:"name"`
	Agent      string        `yaml:"agent"` // MiniMax or Human
	Depth      int           `yaml:"depth"`
	Evaluation string        `yaml:"evaluation"`
	Seed       uint64        `yaml:"seed"`
	Goroutines int           `yaml:"goroutines"`
	Timeout    time.Duration `yaml:"timeout"`
	Start      []int         `yaml:"start"` // [row, col]
}

type Config struct {
	Players     []Player `yaml:"players"`
	MaxPlies    int      `yaml:"max_plies"`
	Games       int      `yaml:"games"`
	Elimination bool     `yaml:"elimination"`
	Metrics     bool     `yaml:"metrics"`
}

// Default pits two search agents against each other.
func Default() Config {
	return Config{
		Players: []Player{
			defaultPlayer("green", []int{1, 2}),
			defaultPlayer("blue", []int{3, 2}),
		},
		MaxPlies: meta.MAX_PLIES,
		Games:    meta.GAMES,
	}
}

func defaultPlayer(name string, start []int) Player {
	return Player{
		Name:       name,
		Agent:      agent.MiniMax.String(),
		Depth:      meta.DEPTH,
		Evaluation: meta.EVALUATION,
		Goroutines: meta.GO_ROUTINES,
		Start:      start,
	}
}

// document is the file layout of a Config. Numbers are pointers so that a
// missing key takes its default while an explicit zero is validated.
type document struct {
	Players     []playerDocument `yaml:"players"`
	MaxPlies    *int             `yaml:"max_plies"`
	Games       *int             `yaml:"games"`
	Elimination bool             `yaml:"elimination"`
	Metrics     bool             `yaml:"metrics"`
}

type playerDocument struct {
	Name       string        `yaml:"name"`
	Agent      string        `yaml:"agent"`
	Depth      *int          `yaml:"depth"`
	Evaluation string        `yaml:"evaluation"`
	Seed       uint64        `yaml:"seed"`
	Goroutines *int          `yaml:"goroutines"`
	Timeout    time.Duration `yaml:"timeout"`
	Start      []int         `yaml:"start"`
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration. Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: failed to decode config: %v", agent.ErrConfiguration, err)
	}

	c := Config{
		Players:     make([]Player, len(doc.Players)),
		MaxPlies:    valueOr(doc.MaxPlies, meta.MAX_PLIES),
		Games:       valueOr(doc.Games, meta.GAMES),
		Elimination: doc.Elimination,
		Metrics:     doc.Metrics,
	}
	for i, p := range doc.Players {
		player := Player{
			Name:       p.Name,
			Agent:      p.Agent,
			Depth:      valueOr(p.Depth, meta.DEPTH),
			Evaluation: p.Evaluation,
			Seed:       p.Seed,
			Goroutines: valueOr(p.Goroutines, meta.GO_ROUTINES),
			Timeout:    p.Timeout,
			Start:      p.Start,
		}
		if player.Name == "" {
			player.Name = fmt.Sprintf("player%d", i)
		}
		if player.Evaluation == "" {
			player.Evaluation = meta.EVALUATION
		}
		c.Players[i] = player
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every problem of the configuration at once.
func (c Config) Validate() error {
	var errs []error
	if len(c.Players) < meta.NUM_PLAYERS {
		errs = append(errs, fmt.Errorf("%w: need at least %d players, got %d", agent.ErrConfiguration, meta.NUM_PLAYERS, len(c.Players)))
	}
	if c.MaxPlies < 1 {
		errs = append(errs, fmt.Errorf("%w: max_plies must be positive, got %d", agent.ErrConfiguration, c.MaxPlies))
	}
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("%w: games must be positive, got %d", agent.ErrConfiguration, c.Games))
	}

	starts := make(map[game.Position]string, len(c.Players))
	for i, p := range c.Players {
		kind, err := agent.ParseKind(p.Agent)
		if err != nil {
			errs = append(errs, fmt.Errorf("player %q: %w", p.Name, err))
		} else if kind == agent.MiniMax {
			if p.Depth < 1 {
				errs = append(errs, fmt.Errorf("%w: player %q: depth must be at least 1, got %d", agent.ErrConfiguration, p.Name, p.Depth))
			}
			if p.Goroutines < 1 {
				errs = append(errs, fmt.Errorf("%w: player %q: goroutines must be at least 1, got %d", agent.ErrConfiguration, p.Name, p.Goroutines))
			}
			if _, err := game.EvaluationByName(p.Evaluation); err != nil {
				errs = append(errs, fmt.Errorf("%w: player %q: %v", agent.ErrConfiguration, p.Name, err))
			}
		}

		if len(p.Start) != 2 {
			errs = append(errs, fmt.Errorf("%w: player %q: start must be [row, col]", agent.ErrConfiguration, p.Name))
			continue
		}
		start := game.Position{Row: p.Start[0], Col: p.Start[1]}
		if !(game.Board{}).InBounds(start.Row, start.Col) {
			errs = append(errs, fmt.Errorf("%w: player %q: start %v is off the board", agent.ErrConfiguration, p.Name, p.Start))
		} else if other, ok := starts[start]; ok {
			errs = append(errs, fmt.Errorf("%w: players %q and %q start on the same cell", agent.ErrConfiguration, other, p.Name))
		}
		starts[start] = c.Players[i].Name
	}
	return errors.Join(errs...)
}

// Starts returns the starting cells in player order.
func (c Config) Starts() []game.Position {
	starts := make([]game.Position, len(c.Players))
	for i, p := range c.Players {
		starts[i] = game.Position{Row: p.Start[0], Col: p.Start[1]}
	}
	return starts
}

// Agents builds one agent per player. Human players share source.
func (c Config) Agents(source agent.ActionSource) ([]agent.Agent, error) {
	agents := make([]agent.Agent, len(c.Players))
	for i, p := range c.Players {
		kind, err := agent.ParseKind(p.Agent)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", p.Name, err)
		}
		a, err := agent.New(agent.Config{
			Kind:       kind,
			Player:     i,
			Depth:      p.Depth,
			Evaluation: p.Evaluation,
			Seed:       p.Seed,
			Goroutines: p.Goroutines,
			Timeout:    p.Timeout,
			Metrics:    c.Metrics,
		}, source)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", p.Name, err)
		}
		agents[i] = a
	}
	return agents, nil
}

// Names returns the player names in order.
func (c Config) Names() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}
