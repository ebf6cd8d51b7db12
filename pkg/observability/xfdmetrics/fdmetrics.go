package xfdmetrics

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/limitkit/pkg/util/xfdlimit"
)

const (
	defaultInstrumentationName = "github.com/omeyang/limitkit/xfdmetrics"

	metricNofileSoft    = "limitkit.nofile.soft"
	metricNofileHard    = "limitkit.nofile.hard"
	metricNofileMaximum = "limitkit.nofile.maximum"
)

type config struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义注册行为的配置选项。
type Option func(*config)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// Register 注册 RLIMIT_NOFILE 观测仪表，返回的 Registration 用于停止观测。
//
// 每次采集都即时读取操作系统状态，不跨采集缓存。平台支持情况在注册时
// 即探测：不支持的平台返回包装后的 [xfdlimit.ErrUnsupportedPlatform]，
// 调用方应跳过注册，而不是导出无意义的数值。
func Register(opts ...Option) (metric.Registration, error) {
	// 不支持的平台在注册时报告，而不是等到首次采集。
	if _, _, err := xfdlimit.Current(); err != nil {
		return nil, fmt.Errorf("xfdmetrics: %w", err)
	}

	cfg := &config{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	soft, err := meter.Int64ObservableGauge(
		metricNofileSoft,
		metric.WithDescription("current RLIMIT_NOFILE soft limit"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xfdmetrics: create gauge failed: %w", err)
	}

	hard, err := meter.Int64ObservableGauge(
		metricNofileHard,
		metric.WithDescription("current RLIMIT_NOFILE hard limit"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xfdmetrics: create gauge failed: %w", err)
	}

	maximum, err := meter.Int64ObservableGauge(
		metricNofileMaximum,
		metric.WithDescription("highest soft limit a raise can install"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xfdmetrics: create gauge failed: %w", err)
	}

	reg, err := meter.RegisterCallback(observeLimits(soft, hard, maximum), soft, hard, maximum)
	if err != nil {
		return nil, fmt.Errorf("xfdmetrics: register callback failed: %w", err)
	}
	return reg, nil
}

// observeLimits 构造采集回调。三个仪表共享一次查询批。
func observeLimits(soft, hard, maximum metric.Int64ObservableGauge) metric.Callback {
	return func(_ context.Context, o metric.Observer) error {
		curSoft, curHard, err := xfdlimit.Current()
		if err != nil {
			return fmt.Errorf("xfdmetrics: %w", err)
		}
		achievable, err := xfdlimit.Maximum()
		if err != nil {
			return fmt.Errorf("xfdmetrics: %w", err)
		}

		o.ObserveInt64(soft, clampInt64(curSoft))
		o.ObserveInt64(hard, clampInt64(curHard))
		o.ObserveInt64(maximum, clampInt64(achievable))
		return nil
	}
}

// clampInt64 将 uint64 限制值收敛到 int64 可表示范围。
// hard limit 的 "unlimited" 哨兵值可能超出 int64。
func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
