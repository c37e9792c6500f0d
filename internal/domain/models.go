package domain

// Locale is one of the two supported language codes.
type Locale string

const (
	LocaleTR Locale = "tr"
	LocaleEN Locale = "en"
)

// DefaultLocale is the authoring language; every bilingual field is
// guaranteed to carry it.
const DefaultLocale = LocaleTR

// Locales lists the supported language codes in preference order.
var Locales = []Locale{LocaleTR, LocaleEN}

// LocalizedText carries both language variants of a short text field.
type LocalizedText struct {
	TR string `json:"tr"`
	EN string `json:"en"`
}

// Localized resolves a bilingual field for a locale with the
// requested -> tr -> en -> "" fallback chain.
func (t LocalizedText) Localized(loc Locale) string {
	if loc == LocaleEN && t.EN != "" {
		return t.EN
	}
	if t.TR != "" {
		return t.TR
	}
	return t.EN
}

// Span is a run of inline text within a rich-text block.
type Span struct {
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"` // strong | em | underline
}

// Block is one unit of rich-text content: a styled paragraph/heading,
// a list item, or an inline image.
type Block struct {
	Type     string `json:"_type"`           // block | image
	Style    string `json:"style,omitempty"` // normal | h2 | h3 | blockquote
	ListItem string `json:"listItem,omitempty"`
	Children []Span `json:"children,omitempty"`
	Image    *Image `json:"image,omitempty"`
}

// LocalizedBlocks carries both language variants of rich-text content.
type LocalizedBlocks struct {
	TR []Block `json:"tr"`
	EN []Block `json:"en"`
}

// Localized resolves rich-text content with the same fallback chain as
// LocalizedText; a locale never resolves to nil, only to an empty slice.
func (b LocalizedBlocks) Localized(loc Locale) []Block {
	if loc == LocaleEN && len(b.EN) > 0 {
		return b.EN
	}
	if len(b.TR) > 0 {
		return b.TR
	}
	if len(b.EN) > 0 {
		return b.EN
	}
	return []Block{}
}

// Reference is an unresolved link to another document or asset.
type Reference struct {
	Ref string `json:"_ref"`
}

// Image is an image asset reference with an optional crop hotspot.
type Image struct {
	Asset   Reference `json:"asset"`
	Hotspot *Hotspot  `json:"hotspot,omitempty"`
}

type Hotspot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// File is a file asset reference (PDFs, documents).
type File struct {
	Asset Reference `json:"asset"`
}

// Slug is the human-readable unique identifier of a document, derived
// from the Turkish title at authoring time (max 96 chars).
type Slug struct {
	Current string `json:"current"`
}

// Sector enumerates the industries the catalog is organized around.
type Sector string

const (
	SectorFoodBeverage Sector = "food-beverage"
	SectorHealthcare   Sector = "healthcare"
	SectorCosmetics    Sector = "cosmetics"
	SectorIndustrial   Sector = "industrial"
	SectorRetail       Sector = "retail"
	SectorEcommerce    Sector = "ecommerce"
)

// Sectors lists every valid sector value.
var Sectors = []Sector{
	SectorFoodBeverage, SectorHealthcare, SectorCosmetics,
	SectorIndustrial, SectorRetail, SectorEcommerce,
}

// Dimensions are physical measurements in millimeters.
type Dimensions struct {
	Length float64 `json:"length,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Capacity is a volume or weight with its unit.
type Capacity struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit,omitempty"` // ml | L | g | kg
}

// Doc holds the fields every CMS document carries.
type Doc struct {
	ID        string `json:"_id"`
	Type      string `json:"_type"`
	CreatedAt string `json:"_createdAt"`
	UpdatedAt string `json:"_updatedAt"`
}

// ProductFamily is a top-level product line shown on the grid pages.
type ProductFamily struct {
	Doc
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	CoverImage  Image         `json:"coverImage"`
	Slug        Slug          `json:"slug"`
	Sectors     []Sector      `json:"sectors,omitempty"`
}

// ProductVariant is a concrete size/material entry within a family.
// The authoring rule requires at least one image.
type ProductVariant struct {
	Doc
	Title    LocalizedText `json:"title"`
	Family   Reference     `json:"productFamily"`
	Dims     *Dimensions   `json:"dimensions,omitempty"`
	Capacity *Capacity     `json:"capacity,omitempty"`
	Material LocalizedText `json:"material"`
	LidType  LocalizedText `json:"lidType"`
	PDF      *File         `json:"pdfFile,omitempty"`
	Images   []Image       `json:"images"`
}

// ProductVariantPopulated is a variant with its parent family resolved
// inline in the same query.
type ProductVariantPopulated struct {
	Doc
	Title    LocalizedText `json:"title"`
	Family   ProductFamily `json:"productFamily"`
	Dims     *Dimensions   `json:"dimensions,omitempty"`
	Capacity *Capacity     `json:"capacity,omitempty"`
	Material LocalizedText `json:"material"`
	LidType  LocalizedText `json:"lidType"`
	PDF      *File         `json:"pdfFile,omitempty"`
	Images   []Image       `json:"images"`
}

// SectorSolution groups product families for one industry.
type SectorSolution struct {
	Doc
	SectorName  LocalizedText `json:"sectorName"`
	Description LocalizedText `json:"description"`
	Families    []Reference   `json:"relatedFamilies,omitempty"`
	Slug        Slug          `json:"slug"`
}

// SectorSolutionPopulated resolves the related families inline.
type SectorSolutionPopulated struct {
	Doc
	SectorName  LocalizedText   `json:"sectorName"`
	Description LocalizedText   `json:"description"`
	Families    []ProductFamily `json:"relatedFamilies,omitempty"`
	Slug        Slug            `json:"slug"`
}

// Certificate is a quality/compliance document with a validity window.
type Certificate struct {
	Doc
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	PDF         File          `json:"pdfFile"`
	IssueDate   string        `json:"issueDate,omitempty"`  // YYYY-MM-DD
	ExpiryDate  string        `json:"expiryDate,omitempty"` // YYYY-MM-DD, empty = no expiry
}

// ActiveOn reports whether the certificate is valid on the reference
// date (YYYY-MM-DD): no expiry, or expiry on or after the date.
func (c Certificate) ActiveOn(date string) bool {
	return c.ExpiryDate == "" || c.ExpiryDate >= date
}

// CaseStudy is a customer story tied to a single sector.
type CaseStudy struct {
	Doc
	Title    LocalizedText `json:"title"`
	Sector   Sector        `json:"sector"`
	Problem  LocalizedText `json:"problem"`
	Solution LocalizedText `json:"solution"`
	Result   LocalizedText `json:"result"`
	Gallery  []Image       `json:"gallery,omitempty"`
	Slug     Slug          `json:"slug"`
}

// PageSEO holds optional per-page metadata overrides.
type PageSEO struct {
	MetaTitle       LocalizedText `json:"metaTitle"`
	MetaDescription LocalizedText `json:"metaDescription"`
}

// Page is a free-form content page (about, sustainability, legal).
type Page struct {
	Doc
	Title   LocalizedText   `json:"title"`
	Content LocalizedBlocks `json:"content"`
	Slug    Slug            `json:"slug"`
	SEO     *PageSEO        `json:"seo,omitempty"`
}

// Media is a downloadable asset in the documents library.
type Media struct {
	Doc
	Title       string   `json:"title"`
	File        File     `json:"file"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	FileType    string   `json:"fileType,omitempty"` // pdf | image | video | document
}

// SearchHit is one cross-kind search result, tagged by document type.
type SearchHit struct {
	Doc
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	SectorName  LocalizedText `json:"sectorName"`
	Slug        Slug          `json:"slug"`
}

// Label resolves the display title of a hit regardless of kind
// (sector solutions carry sectorName instead of title).
func (h SearchHit) Label(loc Locale) string {
	if s := h.Title.Localized(loc); s != "" {
		return s
	}
	return h.SectorName.Localized(loc)
}

// Path is the site-relative URL a hit links to.
func (h SearchHit) Path() string {
	switch h.Type {
	case "productFamily":
		return "/products/" + h.Slug.Current
	case "sectorSolution":
		return "/sectors/" + h.Slug.Current
	case "caseStudy":
		return "/case-studies/" + h.Slug.Current
	case "page":
		return "/pages/" + h.Slug.Current
	}
	return "/"
}
