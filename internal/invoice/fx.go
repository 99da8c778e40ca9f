package invoice

import (
	"go.uber.org/fx"

	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/render"
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/service"
)

// Module wires the renderer and the invoice service.
var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
