package cms

import (
	"context"
	"sync"
	"time"

	"tenpak/internal/domain"
)

// HomeData is the home page's content bundle. Each slot carries its
// own error so one failed read degrades only its section.
type HomeData struct {
	Families     []domain.ProductFamily
	Certificates []domain.Certificate
	CaseStudies  []domain.CaseStudy

	FamiliesErr     error
	CertificatesErr error
	CaseStudiesErr  error
}

// Errors returns the non-nil slot errors.
func (h HomeData) Errors() []error {
	var errs []error
	for _, err := range []error{h.FamiliesErr, h.CertificatesErr, h.CaseStudiesErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Homepage fans out the three independent home page reads. The reads
// are unordered and each one fails on its own; a WaitGroup (rather than
// a fail-fast group) keeps a sibling failure from cancelling the rest.
func (c *Client) Homepage(ctx context.Context, now time.Time) HomeData {
	var (
		data HomeData
		wg   sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		fams, err := c.ProductFamilies(ctx)
		if len(fams) > 6 {
			fams = fams[:6]
		}
		data.Families, data.FamiliesErr = fams, err
	}()
	go func() {
		defer wg.Done()
		certs, err := c.ActiveCertificates(ctx, now)
		if len(certs) > 3 {
			certs = certs[:3]
		}
		data.Certificates, data.CertificatesErr = certs, err
	}()
	go func() {
		defer wg.Done()
		studies, err := c.CaseStudies(ctx)
		if len(studies) > 3 {
			studies = studies[:3]
		}
		data.CaseStudies, data.CaseStudiesErr = studies, err
	}()
	wg.Wait()
	return data
}
