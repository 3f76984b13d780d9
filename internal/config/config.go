package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"circuit-load/internal/loadcalc/application"
)

// DeviceSeed is a device declared in a config or panel file.
type DeviceSeed struct {
	Name  string  `yaml:"name"`
	Watts float64 `yaml:"watts"`
}

// CircuitSeed is a circuit declared in a config or panel file.
type CircuitSeed struct {
	Name          string       `yaml:"name"`
	Voltage       float64      `yaml:"voltage"`
	BreakerRating float64      `yaml:"breaker_rating"`
	Devices       []DeviceSeed `yaml:"devices"`
}

// FormConfig lists the options offered to new-circuit forms.
type FormConfig struct {
	Voltages             []float64 `yaml:"voltages"`
	BreakerRatings       []float64 `yaml:"breaker_ratings"`
	DefaultVoltage       float64   `yaml:"default_voltage"`
	DefaultBreakerRating float64   `yaml:"default_breaker_rating"`
}

// Config defines service configuration.
type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	JWTSecret       string        `yaml:"jwt_secret"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Form            FormConfig    `yaml:"form"`
	Circuits        []CircuitSeed `yaml:"circuits"`
}

// DemoCircuits is the sample kitchen panel.
func DemoCircuits() []CircuitSeed {
	return []CircuitSeed{{
		Name:          "Kitchen Circuit",
		Voltage:       120,
		BreakerRating: 20,
		Devices: []DeviceSeed{
			{Name: "Microwave", Watts: 1200},
			{Name: "Coffee Maker", Watts: 900},
		},
	}}
}

// Load reads the YAML file named by LOADCALC_CONFIG (if any) and applies env overrides.
func Load() (Config, error) {
	defaults := application.DefaultFormOptions()
	cfg := Config{
		HTTPAddr:        ":8080",
		ShutdownTimeout: 10 * time.Second,
		Form: FormConfig{
			Voltages:             defaults.Voltages,
			BreakerRatings:       defaults.BreakerRatings,
			DefaultVoltage:       defaults.DefaultVoltage,
			DefaultBreakerRating: defaults.DefaultBreakerRating,
		},
	}

	if path := os.Getenv("LOADCALC_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.JWTSecret = getenvDefault("AUTH_JWT_SECRET", cfg.JWTSecret)
	cfg.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if len(cfg.Circuits) == 0 && getenvBool("LOADCALC_SEED_DEMO", false) {
		cfg.Circuits = DemoCircuits()
	}
	return cfg, cfg.Validate()
}

// Validate checks configuration invariants. Seed circuits are validated when loaded.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: empty http addr")
	}
	if c.Form.DefaultVoltage <= 0 {
		return errors.New("config: default voltage must be positive")
	}
	if c.Form.DefaultBreakerRating <= 0 {
		return errors.New("config: default breaker rating must be positive")
	}
	for _, v := range append(append([]float64(nil), c.Form.Voltages...), c.Form.BreakerRatings...) {
		if v <= 0 {
			return fmt.Errorf("config: form option %v must be positive", v)
		}
	}
	return nil
}

// FormOptions converts the form config for the API.
func (c Config) FormOptions() application.FormOptions {
	options := application.DefaultFormOptions()
	if len(c.Form.Voltages) > 0 {
		options.Voltages = c.Form.Voltages
	}
	if len(c.Form.BreakerRatings) > 0 {
		options.BreakerRatings = c.Form.BreakerRatings
	}
	options.DefaultVoltage = c.Form.DefaultVoltage
	options.DefaultBreakerRating = c.Form.DefaultBreakerRating
	return options
}

// Seeds converts circuit seeds for the load model.
func Seeds(circuits []CircuitSeed) []application.SeedCircuit {
	seeds := make([]application.SeedCircuit, 0, len(circuits))
	for _, circuit := range circuits {
		seed := application.SeedCircuit{
			Name:          circuit.Name,
			Voltage:       circuit.Voltage,
			BreakerRating: circuit.BreakerRating,
		}
		for _, device := range circuit.Devices {
			seed.Devices = append(seed.Devices, application.DeviceInput{Name: device.Name, Watts: device.Watts})
		}
		seeds = append(seeds, seed)
	}
	return seeds
}

// LoadPanel reads a YAML panel file: either a bare list of circuits or a
// document with a top-level "circuits" key.
func LoadPanel(path string) ([]CircuitSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Circuits []CircuitSeed `yaml:"circuits"`
	}
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Circuits) > 0 {
		return doc.Circuits, nil
	}
	var list []CircuitSeed
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("panel %s: %w", path, err)
	}
	return list, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
