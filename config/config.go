package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"rival-snake/game"
	"rival-snake/game/entity"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

const (
	DefaultFile = "snake.ini"
	EnvFile     = ".env"
	EnvPrefix   = "SNAKE_"

	FrontendRaylib = "raylib"
	FrontendTerm   = "term"

	// The rival starts at column 35, so the grid needs at least 36 cells per side.
	MinCellCount = 36
)

type Grid struct {
	CellCount int `ini:"cell_count"`
	CellSize  int `ini:"cell_size"`
	Offset    int `ini:"offset"`
}

type Timing struct {
	TickInterval time.Duration `ini:"tick_interval"`
	BaseFPS      int           `ini:"base_fps"`
	FPSStep      int           `ini:"fps_step"`
	ScoreStep    int           `ini:"score_step"`
}

type Rules struct {
	Lives int    `ini:"lives"`
	Seed  uint64 `ini:"seed"`
}

type Display struct {
	Frontend string `ini:"frontend"`
	Title    string `ini:"title"`
}

type Assets struct {
	FoodTexture string `ini:"food_texture"`
	EatSound    string `ini:"eat_sound"`
	WallSound   string `ini:"wall_sound"`
	BonusSound  string `ini:"bonus_sound"`
	Mute        bool   `ini:"mute"`
}

// Palette holds colours as #rrggbb strings.
type Palette struct {
	Background string `ini:"background"`
	Border     string `ini:"border"`
	Text       string `ini:"text"`
	Snake      string `ini:"snake"`
	Rival      string `ini:"rival"`
	Food       string `ini:"food"`
	Special    string `ini:"special"`
}

type Config struct {
	Grid    Grid
	Timing  Timing
	Rules   Rules
	Display Display
	Assets  Assets
	Palette Palette
}

func Default() Config {
	return Config{
		Grid: Grid{
			CellCount: 40,
			CellSize:  20,
			Offset:    90,
		},
		Timing: Timing{
			TickInterval: 200 * time.Millisecond,
			BaseFPS:      30,
			FPSStep:      5,
			ScoreStep:    5,
		},
		Rules: Rules{
			Lives: 5,
		},
		Display: Display{
			Frontend: FrontendRaylib,
			Title:    "Rival Snake",
		},
		Assets: Assets{
			FoodTexture: "Graphics/food.png",
			EatSound:    "Sounds/eat.mp3",
			WallSound:   "Sounds/wall.mp3",
			BonusSound:  "Sounds/bonus.mp3",
		},
		Palette: Palette{
			Background: "#ffffff",
			Border:     "#000000",
			Text:       "#000000",
			Snake:      "#000000",
			Rival:      "#be2137",
			Food:       "#e6291a",
			Special:    "#f5c400",
		},
	}
}

// LoadFile overlays the sections of an INI file on cfg. A missing file is not an error.
func LoadFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	// Palette values start with '#', which would otherwise read as a comment.
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return errors.Wrapf(err, "load config file %s", path)
	}

	sections := map[string]interface{}{
		"grid":    &cfg.Grid,
		"timing":  &cfg.Timing,
		"rules":   &cfg.Rules,
		"display": &cfg.Display,
		"assets":  &cfg.Assets,
		"palette": &cfg.Palette,
	}
	for name, dst := range sections {
		if !file.HasSection(name) {
			continue
		}
		if err := file.Section(name).MapTo(dst); err != nil {
			return errors.Wrapf(err, "section [%s] of %s", name, path)
		}
	}
	return nil
}

// LoadEnv reads envFile (if present) into the environment, then applies
// SNAKE_* variables on top of cfg. Variables already set win over the file.
func LoadEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return errors.Wrapf(err, "load %s", envFile)
			}
		}
	}

	ints := map[string]*int{
		"CELL_COUNT": &cfg.Grid.CellCount,
		"CELL_SIZE":  &cfg.Grid.CellSize,
		"OFFSET":     &cfg.Grid.Offset,
		"BASE_FPS":   &cfg.Timing.BaseFPS,
		"FPS_STEP":   &cfg.Timing.FPSStep,
		"SCORE_STEP": &cfg.Timing.ScoreStep,
		"LIVES":      &cfg.Rules.Lives,
	}
	for key, dst := range ints {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrapf(err, "%s%s", EnvPrefix, key)
		}
		*dst = v
	}

	if raw, ok := lookup("TICK_INTERVAL"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return errors.Wrapf(err, "%sTICK_INTERVAL", EnvPrefix)
		}
		cfg.Timing.TickInterval = d
	}
	if raw, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%sSEED", EnvPrefix)
		}
		cfg.Rules.Seed = seed
	}
	if raw, ok := lookup("MUTE"); ok {
		mute, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.Wrapf(err, "%sMUTE", EnvPrefix)
		}
		cfg.Assets.Mute = mute
	}
	if raw, ok := lookup("FRONTEND"); ok {
		cfg.Display.Frontend = raw
	}
	if raw, ok := lookup("TITLE"); ok {
		cfg.Display.Title = raw
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// RegisterFlags binds command-line flags to cfg. Defaults are cfg's current values.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Grid.CellCount, "cells", cfg.Grid.CellCount, "Grid size in cells per side")
	fs.IntVar(&cfg.Grid.CellSize, "cell-size", cfg.Grid.CellSize, "Cell size in pixels")
	fs.DurationVar(&cfg.Timing.TickInterval, "tick", cfg.Timing.TickInterval, "Time between game ticks")
	fs.IntVar(&cfg.Timing.BaseFPS, "fps", cfg.Timing.BaseFPS, "Starting frame rate")
	fs.IntVar(&cfg.Rules.Lives, "lives", cfg.Rules.Lives, "Lives at the start of a game")
	fs.Uint64Var(&cfg.Rules.Seed, "seed", cfg.Rules.Seed, "Random seed (0 picks one from the clock)")
	fs.StringVar(&cfg.Display.Frontend, "frontend", cfg.Display.Frontend, "raylib or term")
	fs.BoolVar(&cfg.Assets.Mute, "mute", cfg.Assets.Mute, "Disable sound cues")
}

// Validate checks ranges the game relies on.
func (c Config) Validate() error {
	if c.Grid.CellCount < MinCellCount {
		return errors.Errorf("cell_count %d is below the minimum of %d", c.Grid.CellCount, MinCellCount)
	}
	if c.Grid.CellSize <= 0 {
		return errors.Errorf("cell_size must be positive, got %d", c.Grid.CellSize)
	}
	if c.Timing.TickInterval <= 0 {
		return errors.Errorf("tick_interval must be positive, got %v", c.Timing.TickInterval)
	}
	if c.Timing.BaseFPS <= 0 {
		return errors.Errorf("base_fps must be positive, got %d", c.Timing.BaseFPS)
	}
	if c.Rules.Lives <= 0 {
		return errors.Errorf("lives must be positive, got %d", c.Rules.Lives)
	}
	switch c.Display.Frontend {
	case FrontendRaylib, FrontendTerm:
	default:
		return errors.Errorf("unknown frontend %q", c.Display.Frontend)
	}

	colors := map[string]string{
		"background": c.Palette.Background,
		"border":     c.Palette.Border,
		"text":       c.Palette.Text,
		"snake":      c.Palette.Snake,
		"rival":      c.Palette.Rival,
		"food":       c.Palette.Food,
		"special":    c.Palette.Special,
	}
	for name, hex := range colors {
		if _, err := ParseHex(hex); err != nil {
			return errors.Wrapf(err, "palette %s", name)
		}
	}
	return nil
}

// RGB is a colour decoded from the palette.
type RGB struct {
	R, G, B uint8
}

// ParseHex decodes "#rrggbb" (the leading # is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, errors.Errorf("colour %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, errors.Wrapf(err, "colour %q", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHex is ParseHex for palettes that already passed Validate.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Load builds the configuration from defaults, the INI file, the environment
// and finally the command line.
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	path := fs.String("config", DefaultFile, "Path to the INI config file")
	envFile := fs.String("env", EnvFile, "Path to a .env file")
	// First pass only to find -config and -env.
	scratch := Default()
	RegisterFlags(fs, &scratch)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if err := LoadFile(&cfg, *path); err != nil {
		return cfg, err
	}
	if err := LoadEnv(&cfg, *envFile); err != nil {
		return cfg, err
	}

	final := flag.NewFlagSet("snake", flag.ContinueOnError)
	final.String("config", *path, "Path to the INI config file")
	final.String("env", *envFile, "Path to a .env file")
	RegisterFlags(final, &cfg)
	if err := final.Parse(args); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (c RGB) toEntity() entity.Color {
	return entity.Color{R: c.R, G: c.G, B: c.B}
}

// GameOptions converts a validated config into options for game.NewGame.
func (c Config) GameOptions() game.Options {
	return game.Options{
		CellCount:    c.Grid.CellCount,
		Lives:        c.Rules.Lives,
		TickInterval: c.Timing.TickInterval,
		BaseFPS:      c.Timing.BaseFPS,
		FPSStep:      c.Timing.FPSStep,
		ScoreStep:    c.Timing.ScoreStep,
		Seed:         c.Rules.Seed,
		PlayerColor:  MustParseHex(c.Palette.Snake).toEntity(),
		RivalColor:   MustParseHex(c.Palette.Rival).toEntity(),
	}
}
