package handlers

import (
	"tenpak/internal/analytics"
	"tenpak/internal/cms"
	"tenpak/internal/config"
	"tenpak/internal/mailer"
	"tenpak/internal/verify"
)

type Deps struct {
	HomeHandler      *HomeHandler
	ProductHandler   *ProductHandler
	SectorHandler    *SectorHandler
	CaseStudyHandler *CaseStudyHandler
	PageHandler      *PageHandler
	DownloadsHandler *DownloadsHandler
	SearchHandler    *SearchHandler
	ContactHandler   *ContactHandler
	ConsentHandler   *ConsentHandler
	SEOHandler       *SEOHandler
}

func NewDeps(content *cms.Client, cfg config.Config, sender mailer.Sender, verifier verify.Verifier, tracker *analytics.Tracker) *Deps {
	return &Deps{
		HomeHandler:      &HomeHandler{Content: content},
		ProductHandler:   &ProductHandler{Content: content, Tracker: tracker, SiteURL: cfg.SiteURL},
		SectorHandler:    &SectorHandler{Content: content},
		CaseStudyHandler: &CaseStudyHandler{Content: content},
		PageHandler:      &PageHandler{Content: content},
		DownloadsHandler: &DownloadsHandler{Content: content, Tracker: tracker},
		SearchHandler:    &SearchHandler{Content: content, Tracker: tracker},
		ContactHandler:   &ContactHandler{Mailer: sender, Verifier: verifier, Tracker: tracker, Content: content, Cfg: cfg},
		ConsentHandler:   &ConsentHandler{},
		SEOHandler:       &SEOHandler{Content: content, Cfg: cfg},
	}
}
