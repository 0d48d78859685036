package companies

import (
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

// companyFromForm собирает запрос из полей multipart формы
func companyFromForm(r *http.Request) (*models.CompanyRequest, error) {
	industryID, err := handlers.FormInt64(r, "industryId", 0)
	if err != nil {
		return nil, err
	}

	removeLogo, err := handlers.FormBool(r, "removeLogo")
	if err != nil {
		return nil, err
	}

	req := &models.CompanyRequest{
		IndustryID:  industryID,
		Name:        handlers.FormString(r, "name"),
		Description: handlers.FormString(r, "description"),
		Website:     handlers.FormOptionalString(r, "website"),
		Location:    handlers.FormOptionalString(r, "location"),
		RemoveLogo:  removeLogo != nil && *removeLogo,
	}

	return req, nil
}
