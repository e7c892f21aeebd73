package pubgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/pubgen/ogimage"
	"github.com/eringen/pubgen/paginate"
	"github.com/eringen/pubgen/route"
)

// relatedLimit caps the related posts shown under a post.
const relatedLimit = 3

// buildRun is the state shared by every locale of one build.
type buildRun struct {
	*Builder
	router *route.Router
	store  *Store
	og     *ogimage.Renderer
	report *Report
	log    *slog.Logger
}

func (b *Builder) run(ctx context.Context, rep *Report, log *slog.Logger) error {
	if err := b.Config.Validate(); err != nil {
		return configError(err)
	}
	if err := b.Views.validate(); err != nil {
		return err
	}

	br := &buildRun{
		Builder: b,
		router:  route.New(b.Config.OutputDir, b.Config.DefaultLocale),
		report:  rep,
		log:     log,
	}

	if err := b.stage(ctx, log, "clean", func() error {
		return resetDir(b.Config.OutputDir)
	}); err != nil {
		return err
	}

	if err := b.stage(ctx, log, "assets", func() error {
		if err := copyStatic(b.Config.staticDir(), filepath.Join(b.Config.OutputDir, "static")); err != nil {
			return err
		}
		n, err := copyPublic(b.Config.publicDir(), b.Config.OutputDir)
		log.Debug("Copied assets", "public_entries", n)
		return err
	}); err != nil {
		return err
	}

	store, err := NewStore()
	if err != nil {
		return fmt.Errorf("pubgen: init store: %w", err)
	}
	defer store.Close()
	br.store = store

	if err := b.stage(ctx, log, "load", func() error {
		for _, locale := range b.Config.Locales {
			if _, err := LoadLocale(store, b.Config, locale); err != nil {
				return err
			}
			posts, err := store.ListPosts(locale)
			if err != nil {
				return err
			}
			log.Info("Loaded locale", "locale", locale, "posts", len(posts))
		}
		return nil
	}); err != nil {
		return err
	}
	rep.Locales = store.Locales()

	if err := b.stage(ctx, log, "resources", func() error {
		og, err := b.resources(ctx)
		br.og = og
		return err
	}); err != nil {
		return err
	}

	if err := b.stage(ctx, log, "render", func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.Config.Concurrency)
		for _, locale := range store.Locales() {
			g.Go(func() error { return br.renderLocale(gctx, locale) })
		}
		return g.Wait()
	}); err != nil {
		return err
	}

	return b.stage(ctx, log, "sitemap", br.writeSitemap)
}

// resources prepares the fonts and brand mark every OG image needs.
func (b *Builder) resources(ctx context.Context) (*ogimage.Renderer, error) {
	if e, ok := b.faces.(interface{ Ensure(context.Context) error }); ok {
		if err := e.Ensure(ctx); err != nil {
			return nil, externalError(err)
		}
	}
	logoPath := b.Config.logoPath()
	logo, err := ogimage.LoadImage(logoPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, resourceError(logoPath, ErrMissingAsset)
	}
	if err != nil {
		return nil, resourceError(logoPath, err)
	}

	layout := ogimage.DefaultLayout
	layout.TitleFont = b.Config.TitleFont
	layout.FooterFont = b.Config.FooterFont
	return ogimage.NewRenderer(b.faces, logo, b.Config.topicsDir(), ogimage.WithLayout(layout)), nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return outputError(dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return outputError(dir, err)
	}
	return nil
}

func (br *buildRun) written(kind route.Kind, path string, log *slog.Logger) {
	br.report.count(kind)
	br.recorder.IncArtifact(string(kind))
	log.Debug("Wrote artifact", "kind", kind, "path", path)
}

func (br *buildRun) writeSitemap() error {
	sm, err := buildSitemap(br.router, br.store)
	if err != nil {
		return err
	}
	rt := br.router.Resolve(br.Config.DefaultLocale, route.KindSitemap, route.Params{})
	if err := writeXML(rt.Path, sm); err != nil {
		return err
	}
	br.written(route.KindSitemap, rt.Path, br.log)

	robots := br.router.Resolve(br.Config.DefaultLocale, route.KindRobots, route.Params{})
	if err := writeFile(robots.Path, robotsTxt(br.router, br.store.Config(br.Config.DefaultLocale).Domain)); err != nil {
		return err
	}
	br.written(route.KindRobots, robots.Path, br.log)
	return nil
}

// localeBuild renders the pages of one locale.
type localeBuild struct {
	*buildRun
	locale string
	cfg    *LocaleConfig
	posts  []*Post
	base   PageData
	log    *slog.Logger
}

func (br *buildRun) renderLocale(ctx context.Context, locale string) error {
	posts, err := br.store.ListPosts(locale)
	if err != nil {
		return err
	}
	lb := &localeBuild{
		buildRun: br,
		locale:   locale,
		cfg:      br.store.Config(locale),
		posts:    posts,
		log:      br.log.With("locale", locale),
	}
	lb.base = PageData{
		Site:          lb.cfg,
		Locale:        locale,
		DefaultLocale: br.Config.DefaultLocale,
		Locales:       br.store.Locales(),
		CurrentYear:   br.now().Year(),
		Nav: Nav{
			Home:     lb.url(route.KindHome, route.Params{}),
			Articles: lb.url(route.KindListing, route.Params{Page: 1}),
			Projects: lb.url(route.KindProjects, route.Params{}),
			Feed:     lb.url(route.KindFeed, route.Params{}),
		},
	}

	for _, step := range []func(context.Context) error{
		lb.listings,
		lb.home,
		lb.projects,
		lb.notFound,
		lb.renderPosts,
		lb.feed,
	} {
		if err := step(ctx); err != nil {
			return err
		}
	}
	lb.log.Info("Rendered locale", "posts", len(posts))
	return nil
}

func (lb *localeBuild) url(kind route.Kind, p route.Params) string {
	return lb.router.Resolve(lb.locale, kind, p).URL
}

func (lb *localeBuild) abs(urlPath string) string {
	return lb.router.Absolute(lb.cfg.Domain, urlPath)
}

// page fills the shared template context for one page.
func (lb *localeBuild) page(kind route.Kind, p route.Params, meta PageMeta) PageData {
	d := lb.base
	meta.URL = lb.abs(lb.url(kind, p))
	if meta.Image == "" {
		meta.Image = lb.abs("/static/img/logo.png")
	}
	d.Meta = meta
	d.Alternates = lb.alternates(kind, p)
	d.JSONLD = WebsiteJsonLD(lb.cfg, lb.abs(lb.base.Nav.Home))
	return d
}

// alternates points at the matching page of every locale. A post links to
// the post with the same slug in another locale; pages without a
// counterpart link to that locale's home page.
func (lb *localeBuild) alternates(kind route.Kind, p route.Params) []Alternate {
	out := make([]Alternate, 0, len(lb.base.Locales))
	for _, l := range lb.base.Locales {
		k, params := kind, p
		switch {
		case l == lb.locale:
		case kind == route.KindPost:
			if _, ok := lb.store.GetPost(l, p.Slug); !ok {
				k, params = route.KindHome, route.Params{}
			}
		case kind == route.KindListing && p.Page > 1:
			k, params = route.KindHome, route.Params{}
		}
		out = append(out, Alternate{Locale: l, URL: lb.router.Resolve(l, k, params).URL})
	}
	return out
}

func (lb *localeBuild) summaries(posts []*Post) []PostSummary {
	out := make([]PostSummary, len(posts))
	for i, p := range posts {
		out[i] = PostSummary{
			Post: p,
			URL:  lb.url(route.KindPost, route.Params{Slug: p.Slug}),
			Date: p.FormattedDate(),
		}
	}
	return out
}

func (lb *localeBuild) emit(ctx context.Context, kind route.Kind, p route.Params, cmp templ.Component) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rt := lb.router.Resolve(lb.locale, kind, p)
	if err := writeComponent(ctx, rt.Path, cmp); err != nil {
		return err
	}
	lb.written(kind, rt.Path, lb.log)
	return nil
}

func (lb *localeBuild) listings(ctx context.Context) error {
	for _, pg := range paginate.Paginate(lb.posts, lb.cfg.PostsPerPage) {
		p := route.Params{Page: pg.Number}
		data := ListingData{
			PageData: lb.page(route.KindListing, p, PageMeta{
				Title:       lb.cfg.SiteTitle,
				Description: lb.cfg.SiteDescription,
				OGType:      "website",
			}),
			Page:  pg,
			Posts: lb.summaries(pg.Items),
		}
		if pg.HasPrev() {
			data.PrevURL = lb.url(route.KindListing, route.Params{Page: pg.Prev()})
		}
		if pg.HasNext() {
			data.NextURL = lb.url(route.KindListing, route.Params{Page: pg.Next()})
		}
		if err := lb.emit(ctx, route.KindListing, p, lb.Views.Articles(data)); err != nil {
			return err
		}
	}
	return nil
}

func (lb *localeBuild) home(ctx context.Context) error {
	tags, err := lb.store.ListTags(lb.locale)
	if err != nil {
		return err
	}
	data := HomeData{
		PageData: lb.page(route.KindHome, route.Params{}, PageMeta{
			Title:       lb.cfg.SiteTitle,
			Description: lb.cfg.SiteDescription,
			OGType:      "website",
		}),
		Posts: lb.summaries(paginate.Head(lb.posts, paginate.HomeSize)),
		Tags:  tags,
	}
	return lb.emit(ctx, route.KindHome, route.Params{}, lb.Views.Home(data))
}

func (lb *localeBuild) projects(ctx context.Context) error {
	data := lb.page(route.KindProjects, route.Params{}, PageMeta{
		Title:       lb.cfg.SiteTitle,
		Description: lb.cfg.SiteDescription,
		OGType:      "website",
	})
	return lb.emit(ctx, route.KindProjects, route.Params{}, lb.Views.Projects(data))
}

func (lb *localeBuild) notFound(ctx context.Context) error {
	data := lb.page(route.KindNotFound, route.Params{}, PageMeta{
		Title:       lb.cfg.SiteTitle,
		Description: lb.cfg.SiteDescription,
		OGType:      "website",
	})
	return lb.emit(ctx, route.KindNotFound, route.Params{}, lb.Views.NotFound(data))
}

// renderPosts writes every post page and OG image. Posts are independent, so
// they render concurrently.
func (lb *localeBuild) renderPosts(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lb.Config.Concurrency)
	for _, p := range lb.posts {
		g.Go(func() error {
			if err := lb.post(gctx, p); err != nil {
				return err
			}
			return lb.ogImage(gctx, p)
		})
	}
	return g.Wait()
}

func (lb *localeBuild) post(ctx context.Context, p *Post) error {
	body, err := p.HTML(lb.converter)
	if err != nil {
		return contentError(p.Source, err)
	}
	params := route.Params{Slug: p.Slug}
	data := PostData{
		PageData: lb.page(route.KindPost, params, PageMeta{
			Title:       p.Title,
			Description: p.Summary,
			OGType:      "article",
			Image:       lb.abs(lb.url(route.KindOGImage, params)),
		}),
		Post:    p,
		HTML:    body,
		Date:    p.FormattedDate(),
		Related: lb.summaries(RelatedPosts(p, lb.posts, relatedLimit)),
	}
	data.JSONLD = BlogPostingJsonLD(p, lb.cfg, data.Meta.URL, data.Meta.Image)
	return lb.emit(ctx, route.KindPost, params, lb.Views.Post(data))
}

func (lb *localeBuild) ogImage(ctx context.Context, p *Post) error {
	topic, _ := p.Topic()
	job := ogimage.Job{
		Locale:   lb.locale,
		Slug:     p.Slug,
		Title:    p.Title,
		SiteName: lb.cfg.SiteName,
		Topic:    topic,
	}
	rt := lb.router.Resolve(lb.locale, route.KindOGImage, route.Params{Slug: p.Slug})
	if err := lb.og.WriteFile(ctx, job, rt.Path); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return resourceError(rt.Path, err)
	}
	lb.written(route.KindOGImage, rt.Path, lb.log)
	return nil
}

func (lb *localeBuild) feed(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := buildFeed(lb.router, lb.cfg, lb.locale, lb.posts, lb.converter)
	if err != nil {
		return err
	}
	rt := lb.router.Resolve(lb.locale, route.KindFeed, route.Params{})
	if err := writeXML(rt.Path, doc); err != nil {
		return err
	}
	lb.written(route.KindFeed, rt.Path, lb.log)
	return nil
}
