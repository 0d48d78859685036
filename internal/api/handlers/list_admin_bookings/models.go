package list_admin_bookings

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
)

// ToServiceRequest формирует фильтр из query параметров
// type, status, industryId, mentorId, internshipId, from, to, limit, offset
func ToServiceRequest(r *http.Request) (*models.AdminListRequest, error) {
	query := r.URL.Query()
	req := &models.AdminListRequest{}

	if v := query.Get("type"); v != "" {
		req.Type = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	var err error
	if req.IndustryID, err = handlers.QueryInt64(r, "industryId"); err != nil {
		return nil, err
	}
	if req.MentorID, err = handlers.QueryInt64(r, "mentorId"); err != nil {
		return nil, err
	}
	if req.InternshipID, err = handlers.QueryInt64(r, "internshipId"); err != nil {
		return nil, err
	}
	if req.From, err = queryDate(r, "from"); err != nil {
		return nil, err
	}
	if req.To, err = queryDate(r, "to"); err != nil {
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

func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", handlers.ErrInvalidParam, name, raw)
	}

	return &date, nil
}
