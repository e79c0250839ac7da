package repository

import (
	"context"

	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
)

// ContribuyenteRepository define el puerto del directorio de contribuyentes.
type ContribuyenteRepository interface {
	Create(ctx context.Context, c *entity.Contribuyente) error
	FindByRnc(ctx context.Context, rnc string) (*entity.Contribuyente, error)
	Update(ctx context.Context, c *entity.Contribuyente) error
}
