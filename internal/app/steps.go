package app

import (
	"github.com/weftlabs/weft/internal/registry"
	"github.com/weftlabs/weft/steps/caption"
	"github.com/weftlabs/weft/steps/download"
	"github.com/weftlabs/weft/steps/hub"
	"github.com/weftlabs/weft/steps/laion"
	"github.com/weftlabs/weft/steps/segment"
)

// coreSteps is the definitive list of step definitions compiled into the
// weft binary.
var coreSteps = []registry.Module{
	&laion.Module{},
	&download.Module{},
	&caption.Module{},
	&segment.Module{},
	&hub.Module{},
}
