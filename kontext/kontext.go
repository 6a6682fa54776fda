package kontext

import (
	"skconsole/config"
)

type ProgramKtx struct {
	config          *config.Config
	WindowWidth     int
	WindowHeight    int
	AvailableHeight int
}

// HeightUsed reserves height for a component rendered above the active page.
func (k *ProgramKtx) HeightUsed(height int) {
	if k.AvailableHeight < height {
		k.AvailableHeight = 0
	} else {
		k.AvailableHeight -= height
	}
}

func (k *ProgramKtx) AvailableTableHeight() int {
	// 2 for top and bottom border + 1 for top extra padding
	return k.AvailableHeight - 3
}

func (k *ProgramKtx) Config() *config.Config {
	return k.config
}

func (k *ProgramKtx) RegisterConfig(c *config.Config) {
	k.config = c
}

func New() *ProgramKtx {
	return &ProgramKtx{}
}

func WithNewAvailableDimensions(ktx *ProgramKtx) *ProgramKtx {
	ktx.AvailableHeight = ktx.WindowHeight
	return ktx
}
