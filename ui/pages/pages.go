package pages

import (
	"skconsole/ui"
	"skconsole/ui/components/statusbar"
)

type Page interface {
	ui.View
	statusbar.Provider
}
