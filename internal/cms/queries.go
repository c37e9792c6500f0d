package cms

import (
	"context"
	"fmt"
	"time"

	"tenpak/internal/domain"
)

// Shared field projections. Kept as constants so list and by-slug
// variants of the same kind stay in sync.
const (
	familyFields = `
  _id, _type, _createdAt, _updatedAt,
  title, description, coverImage, slug, sectors`

	variantFields = `
  _id, _type, _createdAt, _updatedAt,
  title, productFamily, dimensions, capacity, material, lidType, pdfFile, images`

	certificateFields = `
  _id, _type, _createdAt, _updatedAt,
  title, description, pdfFile, issueDate, expiryDate`

	caseStudyFields = `
  _id, _type, _createdAt, _updatedAt,
  title, sector, problem, solution, result, gallery, slug`

	pageFields = `
  _id, _type, _createdAt, _updatedAt,
  title, content, slug, seo`

	mediaFields = `
  _id, _type, _createdAt, _updatedAt,
  title, file, tags, description, fileType`
)

// ProductFamilies lists every product family, newest first.
func (c *Client) ProductFamilies(ctx context.Context) ([]domain.ProductFamily, error) {
	out := []domain.ProductFamily{}
	q := `*[_type == "productFamily"] | order(_createdAt desc) {` + familyFields + `}`
	err := c.query(ctx, "productFamilies", q, nil, &out)
	return out, err
}

// ProductFamilyBySlug returns one family or (nil, nil) when no
// document carries the slug.
func (c *Client) ProductFamilyBySlug(ctx context.Context, slug string) (*domain.ProductFamily, error) {
	var out *domain.ProductFamily
	q := `*[_type == "productFamily" && slug.current == $slug][0] {` + familyFields + `}`
	err := c.query(ctx, "productFamilyBySlug", q, map[string]any{"slug": slug}, &out)
	return out, err
}

// ProductFamiliesBySector lists the families tagged with a sector.
func (c *Client) ProductFamiliesBySector(ctx context.Context, sector domain.Sector) ([]domain.ProductFamily, error) {
	out := []domain.ProductFamily{}
	q := `*[_type == "productFamily" && $sector in sectors] | order(_createdAt desc) {` + familyFields + `}`
	err := c.query(ctx, "productFamiliesBySector", q, map[string]any{"sector": string(sector)}, &out)
	return out, err
}

// ProductVariants lists every variant, newest first.
func (c *Client) ProductVariants(ctx context.Context) ([]domain.ProductVariant, error) {
	out := []domain.ProductVariant{}
	q := `*[_type == "productVariant"] | order(_createdAt desc) {` + variantFields + `}`
	err := c.query(ctx, "productVariants", q, nil, &out)
	return out, err
}

// ProductVariantsByFamily lists a family's variants with the parent
// family resolved inline in the same request.
func (c *Client) ProductVariantsByFamily(ctx context.Context, familyID string) ([]domain.ProductVariantPopulated, error) {
	out := []domain.ProductVariantPopulated{}
	q := `*[_type == "productVariant" && productFamily._ref == $familyId] | order(_createdAt desc) {
  _id, _type, _createdAt, _updatedAt,
  title,
  productFamily-> { _id, _type, title, slug, coverImage },
  dimensions, capacity, material, lidType, pdfFile, images
}`
	err := c.query(ctx, "productVariantsByFamily", q, map[string]any{"familyId": familyID}, &out)
	return out, err
}

// SectorSolutions lists every sector solution, newest first.
func (c *Client) SectorSolutions(ctx context.Context) ([]domain.SectorSolution, error) {
	out := []domain.SectorSolution{}
	q := `*[_type == "sectorSolution"] | order(_createdAt desc) {
  _id, _type, _createdAt, _updatedAt,
  sectorName, description, relatedFamilies, slug
}`
	err := c.query(ctx, "sectorSolutions", q, nil, &out)
	return out, err
}

// SectorSolutionBySlug returns one solution with its related families
// resolved inline, or (nil, nil) when the slug is unknown.
func (c *Client) SectorSolutionBySlug(ctx context.Context, slug string) (*domain.SectorSolutionPopulated, error) {
	var out *domain.SectorSolutionPopulated
	q := `*[_type == "sectorSolution" && slug.current == $slug][0] {
  _id, _type, _createdAt, _updatedAt,
  sectorName, description,
  relatedFamilies[]-> {` + familyFields + ` },
  slug
}`
	err := c.query(ctx, "sectorSolutionBySlug", q, map[string]any{"slug": slug}, &out)
	return out, err
}

// Certificates lists every certificate ordered by issue date, newest
// first (list queries otherwise order by authoring date).
func (c *Client) Certificates(ctx context.Context) ([]domain.Certificate, error) {
	out := []domain.Certificate{}
	q := `*[_type == "certificate"] | order(issueDate desc) {` + certificateFields + `}`
	err := c.query(ctx, "certificates", q, nil, &out)
	return out, err
}

// ActiveCertificates lists certificates valid on the given day: no
// expiry date, or an expiry on or after it.
func (c *Client) ActiveCertificates(ctx context.Context, now time.Time) ([]domain.Certificate, error) {
	out := []domain.Certificate{}
	today := now.UTC().Format("2006-01-02")
	q := `*[_type == "certificate" && (expiryDate == null || expiryDate >= $today)] | order(issueDate desc) {` + certificateFields + `}`
	err := c.query(ctx, "activeCertificates", q, map[string]any{"today": today}, &out)
	return out, err
}

// CaseStudies lists every case study, newest first.
func (c *Client) CaseStudies(ctx context.Context) ([]domain.CaseStudy, error) {
	out := []domain.CaseStudy{}
	q := `*[_type == "caseStudy"] | order(_createdAt desc) {` + caseStudyFields + `}`
	err := c.query(ctx, "caseStudies", q, nil, &out)
	return out, err
}

// CaseStudyBySlug returns one case study or (nil, nil).
func (c *Client) CaseStudyBySlug(ctx context.Context, slug string) (*domain.CaseStudy, error) {
	var out *domain.CaseStudy
	q := `*[_type == "caseStudy" && slug.current == $slug][0] {` + caseStudyFields + `}`
	err := c.query(ctx, "caseStudyBySlug", q, map[string]any{"slug": slug}, &out)
	return out, err
}

// CaseStudiesBySector lists the case studies for one sector.
func (c *Client) CaseStudiesBySector(ctx context.Context, sector domain.Sector) ([]domain.CaseStudy, error) {
	out := []domain.CaseStudy{}
	q := `*[_type == "caseStudy" && sector == $sector] | order(_createdAt desc) {` + caseStudyFields + `}`
	err := c.query(ctx, "caseStudiesBySector", q, map[string]any{"sector": string(sector)}, &out)
	return out, err
}

// Pages lists every content page, newest first.
func (c *Client) Pages(ctx context.Context) ([]domain.Page, error) {
	out := []domain.Page{}
	q := `*[_type == "page"] | order(_createdAt desc) {` + pageFields + `}`
	err := c.query(ctx, "pages", q, nil, &out)
	return out, err
}

// PageBySlug returns one content page or (nil, nil).
func (c *Client) PageBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	var out *domain.Page
	q := `*[_type == "page" && slug.current == $slug][0] {` + pageFields + `}`
	err := c.query(ctx, "pageBySlug", q, map[string]any{"slug": slug}, &out)
	return out, err
}

// MediaFiles lists the whole media library, newest first.
func (c *Client) MediaFiles(ctx context.Context) ([]domain.Media, error) {
	out := []domain.Media{}
	q := `*[_type == "media"] | order(_createdAt desc) {` + mediaFields + `}`
	err := c.query(ctx, "mediaFiles", q, nil, &out)
	return out, err
}

// MediaFilesByType filters the library by the file-type enum.
func (c *Client) MediaFilesByType(ctx context.Context, fileType string) ([]domain.Media, error) {
	out := []domain.Media{}
	q := `*[_type == "media" && fileType == $fileType] | order(_createdAt desc) {` + mediaFields + `}`
	err := c.query(ctx, "mediaFilesByType", q, map[string]any{"fileType": fileType}, &out)
	return out, err
}

// MediaFilesByTag filters the library by a free-text tag.
func (c *Client) MediaFilesByTag(ctx context.Context, tag string) ([]domain.Media, error) {
	out := []domain.Media{}
	q := `*[_type == "media" && $tag in tags] | order(_createdAt desc) {` + mediaFields + `}`
	err := c.query(ctx, "mediaFilesByTag", q, map[string]any{"tag": tag}, &out)
	return out, err
}

// Search runs a prefix match across bilingual title/description/sector
// name for the locale and passes the backend's relevance order through
// untouched.
func (c *Client) Search(ctx context.Context, term string, loc domain.Locale) ([]domain.SearchHit, error) {
	out := []domain.SearchHit{}
	lang := string(domain.DefaultLocale)
	if loc == domain.LocaleEN {
		lang = string(domain.LocaleEN)
	}
	q := fmt.Sprintf(`*[
  _type in ["productFamily", "sectorSolution", "caseStudy", "page"] &&
  (
    title.%[1]s match $term + "*" ||
    description.%[1]s match $term + "*" ||
    sectorName.%[1]s match $term + "*"
  )
] | order(_score desc) {
  _id, _type, title, description, sectorName, slug
}`, lang)
	err := c.query(ctx, "search", q, map[string]any{"term": term}, &out)
	return out, err
}
