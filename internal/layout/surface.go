package layout

import "context"

// Sidebar is the sidebar container target.
type Sidebar interface {
	ApplySidebar(SidebarView)
}

// Content is the content container target.
type Content interface {
	ApplyContent(ContentView)
}

// Body receives page-level markers (collapsed class, drawer overlay).
type Body interface {
	ApplyBody(BodyView)
}

// Surfaces groups the render targets. Without both Sidebar and Content every
// controller operation is a no-op; a nil Body is skipped.
type Surfaces struct {
	Sidebar Sidebar
	Content Content
	Body    Body
}

// Preferences is durable key/value storage. Implementations may fail; the
// controller never lets a failure block rendering.
type Preferences interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Recorder is an in-memory surface that keeps the last applied views and
// counts applies. Headless harnesses and tests render into it.
type Recorder struct {
	Sidebar SidebarView
	Content ContentView
	Body    BodyView

	SidebarApplies int
	ContentApplies int
	BodyApplies    int
}

func (r *Recorder) ApplySidebar(v SidebarView) {
	r.Sidebar = v
	r.SidebarApplies++
}

func (r *Recorder) ApplyContent(v ContentView) {
	r.Content = v
	r.ContentApplies++
}

func (r *Recorder) ApplyBody(v BodyView) {
	r.Body = v
	r.BodyApplies++
}

// ready reports whether the targets every layout change needs are present.
func (s Surfaces) ready() bool {
	return s.Sidebar != nil && s.Content != nil
}

// Surfaces returns r wired as every target.
func (r *Recorder) Surfaces() Surfaces {
	return Surfaces{Sidebar: r, Content: r, Body: r}
}
