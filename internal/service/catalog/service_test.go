package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/filestorage"
	companyRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/company"
	industryRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/industry"
	internshipRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/internship"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
	"github.com/m04kA/InternHub-Service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeIndustries struct {
	items map[int64]*domain.Industry
	inUse map[int64]bool
}

func (f *fakeIndustries) Create(_ context.Context, in *domain.Industry) (*domain.Industry, error) {
	for _, existing := range f.items {
		if strings.EqualFold(existing.Name, in.Name) {
			return nil, industryRepo.ErrAlreadyExists
		}
	}
	in.ID = int64(len(f.items) + 1)
	f.items[in.ID] = in
	return in, nil
}

func (f *fakeIndustries) GetByID(_ context.Context, id int64) (*domain.Industry, error) {
	in, ok := f.items[id]
	if !ok {
		return nil, industryRepo.ErrIndustryNotFound
	}
	return in, nil
}

func (f *fakeIndustries) List(context.Context) ([]*domain.Industry, error) {
	var result []*domain.Industry
	for _, in := range f.items {
		result = append(result, in)
	}
	return result, nil
}

func (f *fakeIndustries) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return industryRepo.ErrIndustryNotFound
	}
	if f.inUse[id] {
		return industryRepo.ErrInUse
	}
	delete(f.items, id)
	return nil
}

type fakeCompanies struct {
	items      map[int64]*domain.Company
	industries map[int64]bool
	withApps   map[int64]bool
}

func (f *fakeCompanies) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	if !f.industries[c.IndustryID] {
		return nil, companyRepo.ErrInvalidIndustry
	}
	c.ID = int64(len(f.items) + 1)
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCompanies) Update(_ context.Context, c *domain.Company) (*domain.Company, error) {
	if _, ok := f.items[c.ID]; !ok {
		return nil, companyRepo.ErrCompanyNotFound
	}
	if !f.industries[c.IndustryID] {
		return nil, companyRepo.ErrInvalidIndustry
	}
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCompanies) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, companyRepo.ErrCompanyNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCompanies) List(_ context.Context, industryID *int64) ([]*domain.Company, error) {
	var result []*domain.Company
	for _, c := range f.items {
		if industryID == nil || c.IndustryID == *industryID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCompanies) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return companyRepo.ErrCompanyNotFound
	}
	if f.withApps[id] {
		return companyRepo.ErrInUse
	}
	delete(f.items, id)
	return nil
}

type fakeInternships struct {
	withApps   map[int64]bool
	items      map[int64]*domain.Internship
	synced     map[int64]int64
	lastFilter domain.InternshipsFilter
}

func (f *fakeInternships) Create(_ context.Context, in *domain.Internship) (*domain.Internship, error) {
	in.ID = int64(len(f.items) + 1)
	f.items[in.ID] = in
	return in, nil
}

func (f *fakeInternships) Update(_ context.Context, in *domain.Internship) (*domain.Internship, error) {
	if _, ok := f.items[in.ID]; !ok {
		return nil, internshipRepo.ErrInternshipNotFound
	}
	f.items[in.ID] = in
	return in, nil
}

func (f *fakeInternships) SyncIndustry(_ context.Context, companyID, industryID int64) error {
	f.synced[companyID] = industryID
	return nil
}

func (f *fakeInternships) GetByID(_ context.Context, id int64) (*domain.Internship, error) {
	in, ok := f.items[id]
	if !ok {
		return nil, internshipRepo.ErrInternshipNotFound
	}
	return in, nil
}

func (f *fakeInternships) List(_ context.Context, filter domain.InternshipsFilter) ([]*domain.Internship, error) {
	f.lastFilter = filter
	var result []*domain.Internship
	for _, in := range f.items {
		result = append(result, in)
	}
	return result, nil
}

func (f *fakeInternships) Count(context.Context, domain.InternshipsFilter) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeInternships) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return internshipRepo.ErrInternshipNotFound
	}
	if f.withApps[id] {
		return internshipRepo.ErrInUse
	}
	delete(f.items, id)
	return nil
}

type fixture struct {
	svc         *Service
	industries  *fakeIndustries
	companies   *fakeCompanies
	internships *fakeInternships
	dir         string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	f := &fixture{
		industries:  &fakeIndustries{items: map[int64]*domain.Industry{}, inUse: map[int64]bool{}},
		companies:   &fakeCompanies{items: map[int64]*domain.Company{}, industries: map[int64]bool{1: true, 2: true}},
		internships: &fakeInternships{items: map[int64]*domain.Internship{}, synced: map[int64]int64{}},
		dir:         dir,
	}

	f.svc = NewService(
		f.industries,
		f.companies,
		f.internships,
		filestorage.NewLocalStorage(dir, "http://files.local/uploads"),
		fakeTx{},
		Config{Location: time.UTC},
		nopLogger{},
	).WithClock(func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) })

	return f
}

func pngUpload(name string) *domain.Upload {
	return &domain.Upload{Reader: strings.NewReader("\x89PNG"), Filename: name, Size: 4}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	_ = filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestService_Industries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateIndustry(ctx, &models.CreateIndustryRequest{Name: "  Fintech "})
	require.NoError(t, err)
	assert.Equal(t, "Fintech", created.Name)

	_, err = f.svc.CreateIndustry(ctx, &models.CreateIndustryRequest{Name: "fintech"})
	assert.ErrorIs(t, err, ErrIndustryExists)

	_, err = f.svc.CreateIndustry(ctx, &models.CreateIndustryRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.industries.inUse[created.ID] = true
	assert.ErrorIs(t, f.svc.DeleteIndustry(ctx, created.ID), ErrIndustryInUse)

	f.industries.inUse[created.ID] = false
	require.NoError(t, f.svc.DeleteIndustry(ctx, created.ID))
	assert.ErrorIs(t, f.svc.DeleteIndustry(ctx, created.ID), ErrIndustryNotFound)
}

func TestService_CreateCompanyWithLogo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.CreateCompany(ctx, &models.CompanyRequest{IndustryID: 1, Name: "Paystack"}, pngUpload("logo.PNG"))
	require.NoError(t, err)
	require.NotNil(t, resp.LogoURL)
	assert.True(t, strings.HasPrefix(*resp.LogoURL, "http://files.local/uploads/logos/companies/"))
	assert.True(t, strings.HasSuffix(*resp.LogoURL, ".png"))
	assert.Equal(t, 1, countFiles(t, f.dir))
}

func TestService_CreateCompanyRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateCompany(ctx, &models.CompanyRequest{IndustryID: 1, Name: "Acme"}, pngUpload("logo.gif"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	big := &domain.Upload{Reader: strings.NewReader("x"), Filename: "logo.png", Size: domain.MaxImageSizeBytes + 1}
	_, err = f.svc.CreateCompany(ctx, &models.CompanyRequest{IndustryID: 1, Name: "Acme"}, big)
	assert.ErrorIs(t, err, ErrInvalidImage)

	// Неизвестная отрасль: загруженный логотип удаляется
	_, err = f.svc.CreateCompany(ctx, &models.CompanyRequest{IndustryID: 99, Name: "Acme"}, pngUpload("logo.png"))
	assert.ErrorIs(t, err, ErrIndustryNotFound)
	assert.Equal(t, 0, countFiles(t, f.dir))
}

func TestService_UpdateCompanySyncsIndustryAndReplacesLogo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateCompany(ctx, &models.CompanyRequest{IndustryID: 1, Name: "Acme"}, pngUpload("a.png"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateCompany(ctx, created.ID, &models.CompanyRequest{IndustryID: 2, Name: "Acme Ltd"}, pngUpload("b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", updated.Name)
	assert.Equal(t, int64(2), f.internships.synced[created.ID])
	require.NotNil(t, updated.LogoURL)
	assert.True(t, strings.HasSuffix(*updated.LogoURL, ".jpg"))
	assert.Equal(t, 1, countFiles(t, f.dir))

	_, err = f.svc.UpdateCompany(ctx, 42, &models.CompanyRequest{IndustryID: 1, Name: "X"}, nil)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestService_DeleteCompanyRemovesLogo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateCompany(ctx, &models.CompanyRequest{IndustryID: 1, Name: "Acme"}, pngUpload("a.png"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteCompany(ctx, created.ID))
	assert.Equal(t, 0, countFiles(t, f.dir))
	assert.ErrorIs(t, f.svc.DeleteCompany(ctx, created.ID), ErrCompanyNotFound)
}

func TestService_CreateInternshipCopiesIndustry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.companies.items[5] = &domain.Company{ID: 5, IndustryID: 2, Name: "Flutterwave"}

	resp, err := f.svc.CreateInternship(ctx, &models.InternshipRequest{
		CompanyID:   5,
		Title:       "Backend Intern",
		Description: "Go services",
		Deadline:    ptr.Ptr("2026-04-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.IndustryID)
	assert.Equal(t, "Flutterwave", resp.CompanyName)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.IsOpen)
	require.NotNil(t, resp.Deadline)
	assert.Equal(t, "2026-04-01", *resp.Deadline)

	_, err = f.svc.CreateInternship(ctx, &models.InternshipRequest{CompanyID: 77, Title: "X"})
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = f.svc.CreateInternship(ctx, &models.InternshipRequest{CompanyID: 5, Title: "X", Deadline: ptr.Ptr("01/04/2026")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_InternshipPastDeadlineIsClosed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.companies.items[5] = &domain.Company{ID: 5, IndustryID: 1, Name: "Acme"}

	resp, err := f.svc.CreateInternship(ctx, &models.InternshipRequest{
		CompanyID: 5, Title: "Old", Description: "d", Deadline: ptr.Ptr("2026-03-09"),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)

	got, err := f.svc.GetInternship(ctx, resp.ID)
	require.NoError(t, err)
	assert.False(t, got.IsOpen)

	_, err = f.svc.GetInternship(ctx, 999)
	assert.ErrorIs(t, err, ErrInternshipNotFound)
}

func TestService_ListInternshipsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.svc.ListInternships(ctx, &models.ListInternshipsRequest{OpenOnly: true, Query: " go "})
	require.NoError(t, err)
	assert.Equal(t, uint64(domain.DefaultPageLimit), page.Limit)
	assert.Equal(t, "go", f.internships.lastFilter.Query)
	assert.True(t, f.internships.lastFilter.OpenOnly)
	assert.Equal(t, 10, f.internships.lastFilter.Today.Day())

	page, err = f.svc.ListInternships(ctx, &models.ListInternshipsRequest{Limit: 1000, Offset: 40})
	require.NoError(t, err)
	assert.Equal(t, uint64(domain.MaxPageLimit), page.Limit)
	assert.Equal(t, uint64(40), page.Offset)
}

func TestService_UpdateAndDeleteInternship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.companies.items[5] = &domain.Company{ID: 5, IndustryID: 1, Name: "Acme"}

	created, err := f.svc.CreateInternship(ctx, &models.InternshipRequest{CompanyID: 5, Title: "Intern", Description: "d"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateInternship(ctx, created.ID, &models.InternshipRequest{
		CompanyID: 5, Title: "Senior Intern", Description: "d", IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Intern", updated.Title)
	assert.False(t, updated.IsOpen)

	_, err = f.svc.UpdateInternship(ctx, 999, &models.InternshipRequest{CompanyID: 5, Title: "X"})
	assert.ErrorIs(t, err, ErrInternshipNotFound)

	require.NoError(t, f.svc.DeleteInternship(ctx, created.ID))
	assert.ErrorIs(t, f.svc.DeleteInternship(ctx, created.ID), ErrInternshipNotFound)
}

func TestService_DeleteWithApplicationsIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.companies.items[5] = &domain.Company{ID: 5, IndustryID: 1, Name: "Acme"}
	f.companies.withApps = map[int64]bool{5: true}

	created, err := f.svc.CreateInternship(ctx, &models.InternshipRequest{CompanyID: 5, Title: "Intern", Description: "d"})
	require.NoError(t, err)
	f.internships.withApps = map[int64]bool{created.ID: true}

	assert.ErrorIs(t, f.svc.DeleteInternship(ctx, created.ID), ErrInternshipInUse)
	assert.Contains(t, f.internships.items, created.ID)

	assert.ErrorIs(t, f.svc.DeleteCompany(ctx, 5), ErrCompanyInUse)
	assert.Contains(t, f.companies.items, int64(5))
}
