package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsFile struct {
	Services  []Service       `yaml:"services"`
	Portfolio []PortfolioItem `yaml:"portfolio"`
}

var loadDefaults = sync.OnceValue(func() defaultsFile {
	var f defaultsFile
	if err := yaml.Unmarshal(defaultsYAML, &f); err != nil {
		// 埋め込みファイルが壊れているのはビルド不備
		panic(fmt.Sprintf("catalog: invalid defaults.yaml: %v", err))
	}
	return f
})

// DefaultServices は組み込みのサービス一覧（コピー）を返します。
func DefaultServices() []Service {
	src := loadDefaults().Services
	out := make([]Service, len(src))
	copy(out, src)
	return out
}

// DefaultPortfolio は組み込みのポートフォリオ一覧（コピー）を返します。
func DefaultPortfolio() []PortfolioItem {
	src := loadDefaults().Portfolio
	out := make([]PortfolioItem, len(src))
	for i, p := range src {
		p.Tags = slices.Clone(p.Tags)
		out[i] = p
	}
	return out
}
