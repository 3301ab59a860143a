package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ModelSize is a size/version label selecting which pretrained recognition model to load.
type ModelSize string

const (
	ModelTiny    ModelSize = "tiny"
	ModelBase    ModelSize = "base"
	ModelSmall   ModelSize = "small"
	ModelMedium  ModelSize = "medium"
	ModelLarge   ModelSize = "large"
	ModelLargeV1 ModelSize = "large-v1"
	ModelLargeV2 ModelSize = "large-v2"
	ModelLargeV3 ModelSize = "large-v3"

	DefaultModelSize = ModelBase
)

// ModelSizes lists the accepted labels in presentation order.
var ModelSizes = []ModelSize{
	ModelTiny, ModelBase, ModelSmall, ModelMedium,
	ModelLarge, ModelLargeV1, ModelLargeV2, ModelLargeV3,
}

// ModelSizeNames returns ModelSizes as plain strings.
func ModelSizeNames() []string {
	return lo.Map(ModelSizes, func(s ModelSize, _ int) string { return string(s) })
}

// ParseModelSize accepts exactly one of ModelSizes.
func ParseModelSize(s string) (ModelSize, error) {
	size := ModelSize(s)
	if !lo.Contains(ModelSizes, size) {
		return "", fmt.Errorf("invalid model size %q (choose from %s)", s, strings.Join(ModelSizeNames(), ", "))
	}
	return size, nil
}

// Canonical resolves aliases: "large" currently means large-v3.
func (s ModelSize) Canonical() ModelSize {
	if s == ModelLarge {
		return ModelLargeV3
	}
	return s
}

func (s ModelSize) String() string {
	return string(s)
}
