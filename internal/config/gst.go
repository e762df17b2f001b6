package config

import (
	"errors"
	"math"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
)

// GSTConfigHolder exposes the active GST rates with hot reload from gst.yml.
// Rates default to the statutory 9/9/18 split when no config file is present.
type GSTConfigHolder struct {
	current atomic.Value // holds fee.Rates
}

func NewGSTConfigHolder(log *zap.Logger) (*GSTConfigHolder, error) {
	log = log.Named("gst-config")
	v := viper.New()

	v.SetConfigName("gst")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/sti-academy")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ACADEMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := fee.DefaultRates()
	v.SetDefault("gst.sgstPercent", defaults.SGSTPercent)
	v.SetDefault("gst.cgstPercent", defaults.CGSTPercent)
	v.SetDefault("gst.igstPercent", defaults.IGSTPercent)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	rates := fee.Rates{
		SGSTPercent: v.GetFloat64("gst.sgstPercent"),
		CGSTPercent: v.GetFloat64("gst.cgstPercent"),
		IGSTPercent: v.GetFloat64("gst.igstPercent"),
	}
	if err := validateGSTRates(rates); err != nil {
		return nil, err
	}

	holder := &GSTConfigHolder{}
	holder.current.Store(rates)

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			updated := fee.Rates{
				SGSTPercent: v.GetFloat64("gst.sgstPercent"),
				CGSTPercent: v.GetFloat64("gst.cgstPercent"),
				IGSTPercent: v.GetFloat64("gst.igstPercent"),
			}
			if err := validateGSTRates(updated); err != nil {
				log.Warn("invalid gst config ignored", zap.Error(err))
				return
			}
			holder.current.Store(updated)
			log.Info("gst rates reloaded", zap.String("file", e.Name))
		})
		v.WatchConfig()
	}

	return holder, nil
}

func (h *GSTConfigHolder) Rates() fee.Rates {
	return h.current.Load().(fee.Rates)
}

// The intra-state split must add up to the inter-state rate; the UI toggle
// between regimes assumes it.
func validateGSTRates(r fee.Rates) error {
	if r.SGSTPercent < 0 || r.CGSTPercent < 0 || r.IGSTPercent < 0 {
		return errors.New("gst rates cannot be negative")
	}
	if math.Abs(r.SGSTPercent+r.CGSTPercent-r.IGSTPercent) > 1e-9 {
		return errors.New("gst.sgstPercent + gst.cgstPercent must equal gst.igstPercent")
	}
	return nil
}
