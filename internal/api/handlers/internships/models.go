package internships

import (
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

// ToListRequest формирует фильтр из query параметров
// industryId, companyId, q, openOnly (по умолчанию true), limit, offset
func ToListRequest(r *http.Request) (*models.ListInternshipsRequest, error) {
	req := &models.ListInternshipsRequest{
		Query: r.URL.Query().Get("q"),
	}

	var err error
	if req.IndustryID, err = handlers.QueryInt64(r, "industryId"); err != nil {
		return nil, err
	}
	if req.CompanyID, err = handlers.QueryInt64(r, "companyId"); err != nil {
		return nil, err
	}
	if req.OpenOnly, err = handlers.QueryBool(r, "openOnly", true); err != nil {
		return nil, err
	}
	if req.Limit, err = handlers.QueryUint64(r, "limit", domain.DefaultPageLimit); err != nil {
		return nil, err
	}
	if req.Offset, err = handlers.QueryUint64(r, "offset", 0); err != nil {
		return nil, err
	}

	return req, nil
}
