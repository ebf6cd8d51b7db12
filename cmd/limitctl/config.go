package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// fileConfig 为配置文件结构，YAML 与 JSON 共用同一套字段。
//
// 示例（YAML）:
//
//	log:
//	  level: debug
//	  format: json
//	output: json
//	raise:
//	  target: 65536
//	  best_effort: true
type fileConfig struct {
	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
	Output string `koanf:"output"`
	Raise  struct {
		Target     uint64 `koanf:"target"`
		BestEffort bool   `koanf:"best_effort"`
	} `koanf:"raise"`
}

// defaultFileConfig 返回内置默认配置。
func defaultFileConfig() *fileConfig {
	cfg := &fileConfig{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Output = outputText
	return cfg
}

// loadFileConfig 读取并解析配置文件，path 为空时直接返回默认配置。
// 文件中省略的字段保持默认值。
func loadFileConfig(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	parser, err := detectParser(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("反序列化配置失败: %w", err)
	}

	return cfg, nil
}

// detectParser 根据文件扩展名选择解析器。
func detectParser(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, &usageError{msg: fmt.Sprintf("不支持的配置文件格式 %q（支持 .yaml/.yml/.json）", filepath.Ext(path))}
	}
}
