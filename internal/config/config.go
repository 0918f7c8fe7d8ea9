// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "cwdecoder"
	ConfigType    = "yaml"
	DefaultConfig = `# CW Decoder Configuration

# Audio device settings
audio_device: "hw:1,0"  # Not read by any command; capture selects by device_index
device_index: -1        # -1 for default device
sample_rate: 48000      # Audio sample rate in Hz
channels: 1             # Number of channels (1=mono)
buffer_size: 1024       # Audio buffer size in frames

# Bandpass filter
center_frequency: 600   # Biquad bandpass center frequency in Hz
q: 5                    # Biquad Q factor

# Envelope follower / edge detector
release_seconds: 0.005    # Envelope release time constant (seconds)
min_event_seconds: 0.005  # Glitch-suppression floor (seconds)
threshold_live: 0.01      # Envelope threshold for realtime capture
threshold_batch: 0.05     # Envelope threshold for file/batch decoding

# Timing
wpm: 20                  # Initial WPM estimate, used until re-estimated

# Synthesis / encode
tone_frequency: 600      # Output tone frequency in Hz for the encoder
output_sample_rate: 44100 # Sample rate for synthesized WAV output

# Output
debug: false            # Enable debug output
`
)

// Settings holds all application configuration.
type Settings struct {
	// Audio device settings
	AudioDevice string  `mapstructure:"audio_device"`
	DeviceIndex int     `mapstructure:"device_index"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Channels    int     `mapstructure:"channels"`
	BufferSize  int     `mapstructure:"buffer_size"`

	// Bandpass filter (§4.B)
	CenterFrequency float64 `mapstructure:"center_frequency"`
	Q               float64 `mapstructure:"q"`

	// Envelope follower / edge detector (§4.C)
	ReleaseSeconds  float64 `mapstructure:"release_seconds"`
	MinEventSeconds float64 `mapstructure:"min_event_seconds"`
	ThresholdLive   float64 `mapstructure:"threshold_live"`
	ThresholdBatch  float64 `mapstructure:"threshold_batch"`

	// Timing (§4.D)
	WPM int `mapstructure:"wpm"`

	// Synthesis / encode (§4.G, §4.H)
	ToneFrequency    float64 `mapstructure:"tone_frequency"`
	OutputSampleRate float64 `mapstructure:"output_sample_rate"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/cwdecoder/
func Init() error {
	// Set defaults
	viper.SetDefault("audio_device", "hw:1,0")
	viper.SetDefault("device_index", -1)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("channels", 1)
	viper.SetDefault("buffer_size", 1024)
	viper.SetDefault("center_frequency", 600)
	viper.SetDefault("q", 5)
	viper.SetDefault("release_seconds", 0.005)
	viper.SetDefault("min_event_seconds", 0.005)
	viper.SetDefault("threshold_live", 0.01)
	viper.SetDefault("threshold_batch", 0.05)
	viper.SetDefault("wpm", 20)
	viper.SetDefault("tone_frequency", 600)
	viper.SetDefault("output_sample_rate", 44100)
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/cwdecoder/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings.
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges. It
// mirrors the three ConfigurationError cases spec.md §7 defines:
// non-positive/NaN sample rate, WPM, or Q.
func (s *Settings) Validate() error {
	var errs []error

	if s.SampleRate < 8000 || s.SampleRate > 192000 || math.IsNaN(s.SampleRate) {
		errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %v", s.SampleRate))
	}
	if s.Channels < 1 || s.Channels > 2 {
		errs = append(errs, fmt.Errorf("channels must be 1 or 2, got %d", s.Channels))
	}
	if s.BufferSize < 64 || s.BufferSize > 8192 {
		errs = append(errs, fmt.Errorf("buffer_size must be between 64 and 8192, got %d", s.BufferSize))
	}

	if s.CenterFrequency <= 0 || s.CenterFrequency >= s.SampleRate/2 {
		errs = append(errs, fmt.Errorf("center_frequency (%v Hz) must be positive and less than Nyquist frequency (%v Hz)", s.CenterFrequency, s.SampleRate/2))
	}
	if s.Q <= 0 || math.IsNaN(s.Q) {
		errs = append(errs, fmt.Errorf("q must be positive, got %v", s.Q))
	}

	if s.ReleaseSeconds <= 0 {
		errs = append(errs, fmt.Errorf("release_seconds must be positive, got %v", s.ReleaseSeconds))
	}
	if s.MinEventSeconds < 0 {
		errs = append(errs, fmt.Errorf("min_event_seconds must be non-negative, got %v", s.MinEventSeconds))
	}
	if s.ThresholdLive <= 0 {
		errs = append(errs, fmt.Errorf("threshold_live must be positive, got %v", s.ThresholdLive))
	}
	if s.ThresholdBatch <= 0 {
		errs = append(errs, fmt.Errorf("threshold_batch must be positive, got %v", s.ThresholdBatch))
	}

	if s.WPM < 5 || s.WPM > 60 {
		errs = append(errs, fmt.Errorf("wpm must be between 5 and 60, got %d", s.WPM))
	}

	if s.ToneFrequency <= 0 || s.ToneFrequency >= s.OutputSampleRate/2 {
		errs = append(errs, fmt.Errorf("tone_frequency (%v Hz) must be positive and less than Nyquist frequency (%v Hz)", s.ToneFrequency, s.OutputSampleRate/2))
	}
	if s.OutputSampleRate <= 0 {
		errs = append(errs, fmt.Errorf("output_sample_rate must be positive, got %v", s.OutputSampleRate))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
