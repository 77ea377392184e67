package store

import (
	"context"

	"github.com/kart-io/logger"

	"github.com/kart-io/medreq/internal/apiserver/model"
)

// catalogue 初始药品目录, NO POS 药品需要额外的配送信息
var catalogue = []model.Medicine{
	{Name: "Acetaminofén 500 mg"},
	{Name: "Ibuprofeno 400 mg"},
	{Name: "Losartán 50 mg"},
	{Name: "Metformina 850 mg"},
	{Name: "Omeprazol 20 mg"},
	{Name: "Adalimumab 40 mg", IsNoPos: true},
	{Name: "Insulina glargina 100 UI/mL", IsNoPos: true},
	{Name: "Rituximab 500 mg", IsNoPos: true},
	{Name: "Sofosbuvir 400 mg", IsNoPos: true},
}

// Seed fills the medicine catalogue when it is empty.
func Seed(ctx context.Context, f Factory) error {
	n, err := f.Medicines().Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	list := make([]*model.Medicine, 0, len(catalogue))
	for i := range catalogue {
		m := catalogue[i]
		list = append(list, &m)
	}
	if err := f.Medicines().Create(ctx, list...); err != nil {
		return err
	}

	logger.Infow("Medicine catalogue seeded", "count", len(list))
	return nil
}
