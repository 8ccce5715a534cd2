package content

// Typed accessors for the well-known sections. Each accessor takes the
// document and a language and resolves fallbacks in one place, so renderers
// and API consumers never chain nil checks themselves.

// Hero is the landing banner copy.
type Hero struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	CTAPrimary       string `json:"ctaPrimary"`
	CTASecondary     string `json:"ctaSecondary"`
	CTAPrimaryLink   string `json:"ctaPrimaryLink,omitempty"`
	CTASecondaryLink string `json:"ctaSecondaryLink,omitempty"`
}

// Hero returns the hero section for a language.
func (d Document) Hero(lang Lang) Hero {
	return Hero{
		Title:            d.stringAt("hero", lang, "title"),
		Subtitle:         d.stringAt("hero", lang, "subtitle"),
		CTAPrimary:       d.stringAt("hero", lang, "ctaPrimary"),
		CTASecondary:     d.stringAt("hero", lang, "ctaSecondary"),
		CTAPrimaryLink:   d.stringAt("hero", lang, "ctaPrimaryLink"),
		CTASecondaryLink: d.stringAt("hero", lang, "ctaSecondaryLink"),
	}
}

// About is the company profile section.
type About struct {
	Heading        string   `json:"heading"`
	Description    string   `json:"description"`
	Passion        string   `json:"passion,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	CTA            string   `json:"cta"`
	CTALink        string   `json:"ctaLink,omitempty"`
	Image          string   `json:"image"`
}

// About returns the about section for a language.
func (d Document) About(lang Lang) About {
	branch := d.Localized("about", lang)
	if branch == nil {
		return About{}
	}
	about := About{
		Heading:        str(branch, "heading"),
		Description:    str(branch, "description"),
		Passion:        str(branch, "passion"),
		Qualifications: strSlice(branch, "qualifications"),
		CTA:            str(branch, "cta"),
		CTALink:        str(branch, "ctaLink"),
		Image:          str(branch, "image"),
	}
	// Per-field fallback for copy that may only exist on the canonical branch.
	if about.Heading == "" {
		about.Heading = d.stringAt("about", lang, "heading")
	}
	if about.Image == "" {
		about.Image = d.stringAt("about", lang, "image")
	}
	return about
}

// Stats is the numbers band.
type Stats struct {
	Sessions      int               `json:"sessions"`
	Consultations int               `json:"consultations"`
	Beneficiaries int               `json:"beneficiaries"`
	Years         int               `json:"years,omitempty"`
	Labels        map[string]string `json:"labels"`
}

// Stats returns the stats section for a language.
func (d Document) Stats(lang Lang) Stats {
	branch := d.Localized("stats", lang)
	if branch == nil {
		return Stats{Labels: map[string]string{}}
	}
	labels := make(map[string]string)
	for k, v := range obj(branch, "labels") {
		if s, ok := v.(string); ok {
			labels[k] = s
		}
	}
	return Stats{
		Sessions:      int(num(branch, "sessions")),
		Consultations: int(num(branch, "consultations")),
		Beneficiaries: int(num(branch, "beneficiaries")),
		Years:         int(num(branch, "years")),
		Labels:        labels,
	}
}

// ServicePackage is a tiered offering inside a service.
type ServicePackage struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Sessions    int    `json:"sessions,omitempty"`
	Link        string `json:"link,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Service is a single offered service.
type Service struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Features    []string         `json:"features,omitempty"`
	Price       string           `json:"price"`
	Sessions    int              `json:"sessions,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Link        string           `json:"link,omitempty"`
	Note        string           `json:"note,omitempty"`
	Category    string           `json:"category,omitempty"`
	Packages    []ServicePackage `json:"packages,omitempty"`
}

// HasPackages reports whether packages supersede the flat price fields for
// rendering. The flat fields stay on the document either way.
func (s Service) HasPackages() bool {
	return len(s.Packages) > 0
}

// Services returns the service list for a language.
func (d Document) Services(lang Lang) []Service {
	items := d.LocalizedItems("services", lang)
	out := make([]Service, 0, len(items))
	for _, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			out = append(out, Service{})
			continue
		}
		svc := Service{
			Title:       str(m, "title"),
			Description: str(m, "description"),
			Features:    strSlice(m, "features"),
			Price:       str(m, "price"),
			Sessions:    int(num(m, "sessions")),
			Duration:    str(m, "duration"),
			Link:        str(m, "link"),
			Note:        str(m, "note"),
			Category:    str(m, "category"),
		}
		if packs, ok := m["packages"].([]any); ok {
			for _, rawPack := range packs {
				pm, ok := rawPack.(map[string]any)
				if !ok {
					continue
				}
				svc.Packages = append(svc.Packages, ServicePackage{
					Name:        str(pm, "name"),
					Description: str(pm, "description"),
					Price:       str(pm, "price"),
					Sessions:    int(num(pm, "sessions")),
					Link:        str(pm, "link"),
					Note:        str(pm, "note"),
				})
			}
		}
		out = append(out, svc)
	}
	return out
}

// WhyChooseItem is a single reason bullet.
type WhyChooseItem struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// WhyChoose returns the reasons list for a language.
func (d Document) WhyChoose(lang Lang) []WhyChooseItem {
	items := d.LocalizedItems("whyChoose", lang)
	out := make([]WhyChooseItem, 0, len(items))
	for _, raw := range items {
		m, _ := raw.(map[string]any)
		out = append(out, WhyChooseItem{Text: str(m, "text"), Icon: str(m, "icon")})
	}
	return out
}

// Testimonial is a single customer quote.
type Testimonial struct {
	Text  string `json:"text"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Testimonials returns the testimonial list for a language.
func (d Document) Testimonials(lang Lang) []Testimonial {
	items := d.LocalizedItems("testimonials", lang)
	out := make([]Testimonial, 0, len(items))
	for _, raw := range items {
		m, _ := raw.(map[string]any)
		out = append(out, Testimonial{Text: str(m, "text"), Name: str(m, "name"), Title: str(m, "title")})
	}
	return out
}

// FAQItem is a single question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ returns the FAQ list for a language.
func (d Document) FAQ(lang Lang) []FAQItem {
	items := d.LocalizedItems("faq", lang)
	out := make([]FAQItem, 0, len(items))
	for _, raw := range items {
		m, _ := raw.(map[string]any)
		out = append(out, FAQItem{Question: str(m, "question"), Answer: str(m, "answer")})
	}
	return out
}

// Social is a single social media link. The socials section is not
// language-keyed.
type Social struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// Socials returns the social link list.
func (d Document) Socials() []Social {
	raw, ok := d["socials"].([]any)
	if !ok {
		return nil
	}
	out := make([]Social, 0, len(raw))
	for _, item := range raw {
		m, _ := item.(map[string]any)
		out = append(out, Social{Name: str(m, "name"), URL: str(m, "url"), Icon: str(m, "icon")})
	}
	return out
}

// TrustedBy returns the trusted-by logo references. Entries may be bare
// filenames or objects carrying name/file/path/src; the first non-empty
// reference wins.
func (d Document) TrustedBy() []string {
	raw, ok := d["trustedBy"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			if v != "" {
				out = append(out, v)
			}
		case map[string]any:
			for _, key := range []string{"src", "path", "file", "name"} {
				if s := str(v, key); s != "" {
					out = append(out, s)
					break
				}
			}
		}
	}
	return out
}

// FooterContact is the contact block inside the footer.
type FooterContact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Footer is the resolved footer section.
type Footer struct {
	BrandName  string        `json:"brandName"`
	LogoLight  string        `json:"logoLight"`
	LogoDark   string        `json:"logoDark"`
	Contact    FooterContact `json:"contact"`
	QuickLinks []string      `json:"quickLinks"`
	Copyright  string        `json:"copyright"`
}

// Footer returns the footer section for a language.
func (d Document) Footer(lang Lang) Footer {
	sec := d.Section("footer")
	if sec == nil {
		return Footer{}
	}
	out := Footer{Copyright: str(sec, "copyright")}
	if brand := obj(sec, "brand"); brand != nil {
		out.BrandName = str(brand, "name")
		out.LogoLight = str(brand, "logoLight")
		out.LogoDark = str(brand, "logoDark")
	}
	branch := d.Localized("footer", lang)
	if branch == nil {
		return out
	}
	out.QuickLinks = strSlice(branch, "quickLinks")
	if ci := obj(branch, "contactInfo"); ci != nil {
		out.Contact = FooterContact{
			Email:   str(ci, "email"),
			Phone:   str(ci, "phone"),
			Address: str(ci, "address"),
		}
	}
	return out
}

// WhatsApp is the floating contact widget configuration. Messages are keyed
// by suffix rather than nested branches.
type WhatsApp struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	URLTemplate string `json:"urlTemplate"`
}

// WhatsApp returns the widget configuration for a language.
func (d Document) WhatsApp(lang Lang) WhatsApp {
	sec := d.Section("whatsapp")
	if sec == nil {
		return WhatsApp{}
	}
	msg := str(sec, "message_"+string(lang))
	if msg == "" {
		msg = str(sec, "message_"+string(FallbackLang))
	}
	return WhatsApp{
		Phone:       str(sec, "phone"),
		Message:     msg,
		URLTemplate: str(sec, "urlTemplate"),
	}
}

// NavItem is a single navigation entry.
type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NavItems returns the navbar entries.
func (d Document) NavItems() []NavItem {
	sec := d.Section("navbar")
	if sec == nil {
		return nil
	}
	raw, ok := sec["items"].([]any)
	if !ok {
		return nil
	}
	out := make([]NavItem, 0, len(raw))
	for _, item := range raw {
		m, _ := item.(map[string]any)
		out = append(out, NavItem{ID: str(m, "id"), Label: str(m, "label")})
	}
	return out
}

// UIString resolves a string from the ui section
// (ui.<group>.<lang>.<key>, falling back to the canonical language).
func (d Document) UIString(group string, lang Lang, key string) string {
	ui := d.Section("ui")
	if ui == nil {
		return ""
	}
	groupObj := obj(ui, group)
	if groupObj == nil {
		return ""
	}
	if branch := obj(groupObj, string(lang)); branch != nil {
		if s := str(branch, key); s != "" {
			return s
		}
	}
	if branch := obj(groupObj, string(FallbackLang)); branch != nil {
		return str(branch, key)
	}
	return ""
}
