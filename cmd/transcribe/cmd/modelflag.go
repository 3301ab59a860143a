package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"whisper-transcribe/internal/app/model"
)

// modelSizeValue is a pflag.Value that only accepts known model sizes, so a
// bad --model fails during flag parsing.
type modelSizeValue model.ModelSize

var _ pflag.Value = (*modelSizeValue)(nil)

func newModelSizeValue(def model.ModelSize, p *model.ModelSize) *modelSizeValue {
	*p = def
	return (*modelSizeValue)(p)
}

func (v *modelSizeValue) Set(s string) error {
	size, err := model.ParseModelSize(s)
	if err != nil {
		return err
	}
	*v = modelSizeValue(size)
	return nil
}

func (v *modelSizeValue) String() string {
	return string(*v)
}

func (v *modelSizeValue) Type() string {
	return "size"
}

func modelSizeUsage() string {
	return "model size: " + strings.Join(model.ModelSizeNames(), "|")
}
