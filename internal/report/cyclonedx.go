package report

import (
	"io"
	"net/url"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/varalys/licensecheck/internal/types"
)

const propertyPrefix = "licensecheck:"

// Builder assembles a CycloneDX BOM. Slices start non-nil because the JSON
// schema does not allow null arrays.
type Builder struct {
	meta       Meta
	components []cdx.Component
	properties []cdx.Property
}

func NewBuilder(meta Meta) *Builder {
	return &Builder{
		meta:       meta,
		components: []cdx.Component{},
		properties: []cdx.Property{},
	}
}

// AppendDependencies adds one library component per dependency.
func (b *Builder) AppendDependencies(deps ...types.Dependency) *Builder {
	for _, d := range deps {
		b.components = append(b.components, component(d))
	}
	return b
}

// AppendFindings records each finding as a BOM-level property.
func (b *Builder) AppendFindings(findings ...types.Finding) *Builder {
	for _, f := range findings {
		b.properties = append(b.properties, cdx.Property{
			Name:  propertyPrefix + "incompatible",
			Value: f.String(),
		})
	}
	return b
}

// BOM returns the assembled document.
func (b *Builder) BOM() cdx.BOM {
	ts := b.meta.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	props := append([]cdx.Property{
		{Name: propertyPrefix + "ecosystem", Value: string(b.meta.Ecosystem)},
	}, b.properties...)
	if b.meta.Commit != "" {
		props = append(props, cdx.Property{Name: propertyPrefix + "commit", Value: b.meta.Commit})
	}

	name := b.meta.Tool
	if name == "" {
		name = "licensecheck"
	}
	return cdx.BOM{
		JSONSchema:   "https://cyclonedx.org/schema/bom-1.6.schema.json",
		BOMFormat:    cdx.BOMFormat,
		SpecVersion:  cdx.SpecVersion1_6,
		SerialNumber: "urn:uuid:" + uuid.New().String(),
		Version:      1,
		Metadata: &cdx.Metadata{
			Timestamp: ts.UTC().Format(time.RFC3339),
			Component: &cdx.Component{
				BOMRef: "root",
				Type:   cdx.ComponentTypeApplication,
				Name:   projectName(b.meta),
			},
			Tools: &cdx.ToolsChoice{
				Components: &[]cdx.Component{{
					Type:    cdx.ComponentTypeApplication,
					Name:    name,
					Version: b.meta.ToolVersion,
				}},
			},
		},
		Components: &b.components,
		Properties: &props,
	}
}

// AsJSON encodes the BOM as pretty-printed JSON.
func (b *Builder) AsJSON(w io.Writer) error {
	bom := b.BOM()
	return cdx.NewBOMEncoder(w, cdx.BOMFileFormatJSON).SetPretty(true).Encode(&bom)
}

// WriteCycloneDX renders r as a CycloneDX 1.6 JSON BOM.
func WriteCycloneDX(w io.Writer, r Report) error {
	return NewBuilder(r.Meta).
		AppendDependencies(r.Dependencies...).
		AppendFindings(r.Findings...).
		AsJSON(w)
}

func component(d types.Dependency) cdx.Component {
	c := cdx.Component{
		BOMRef:     bomRef(d),
		Type:       cdx.ComponentTypeLibrary,
		Name:       d.Name,
		Version:    d.Version,
		PackageURL: PackageURL(d),
	}
	if d.Ecosystem == types.Java {
		if g, a, ok := strings.Cut(d.Name, ":"); ok {
			c.Group, c.Name = g, a
		}
	}
	if lic := licenses(d.License); len(lic) > 0 {
		c.Licenses = &lic
	}
	return c
}

func bomRef(d types.Dependency) string {
	if p := PackageURL(d); p != "" {
		return p
	}
	if d.Version != "" {
		return d.Name + "@" + d.Version
	}
	return d.Name
}

// licenses splits a comma-joined license string into named license choices.
func licenses(s string) cdx.Licenses {
	var out cdx.Licenses
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, cdx.LicenseChoice{License: &cdx.License{Name: part}})
	}
	return out
}

// PackageURL returns the purl for d, or "" when the ecosystem has no purl type.
func PackageURL(d types.Dependency) string {
	var typ, path string
	switch d.Ecosystem {
	case types.Python:
		typ = "pypi"
		path = url.PathEscape(strings.ToLower(strings.ReplaceAll(d.Name, "_", "-")))
	case types.Node:
		typ = "npm"
		if scope, name, ok := strings.Cut(d.Name, "/"); ok && strings.HasPrefix(scope, "@") {
			path = "%40" + url.PathEscape(scope[1:]) + "/" + url.PathEscape(name)
		} else {
			path = url.PathEscape(d.Name)
		}
	case types.Ruby:
		typ = "gem"
		path = url.PathEscape(d.Name)
	case types.Java:
		g, a, ok := strings.Cut(d.Name, ":")
		if !ok {
			return ""
		}
		typ = "maven"
		path = url.PathEscape(g) + "/" + url.PathEscape(a)
	default:
		return ""
	}
	if d.Name == "" {
		return ""
	}
	p := "pkg:" + typ + "/" + path
	if d.Version != "" {
		p += "@" + url.PathEscape(d.Version)
	}
	return p
}

func projectName(m Meta) string {
	if m.Repo != "" {
		r := strings.TrimSuffix(m.Repo, ".git")
		if i := strings.LastIndexAny(r, "/:"); i >= 0 {
			r = r[i+1:]
		}
		if r != "" {
			return r
		}
	}
	if m.ProjectDir != "" {
		parts := strings.Split(strings.TrimRight(m.ProjectDir, `/\`), "/")
		if last := parts[len(parts)-1]; last != "" && last != "." {
			return last
		}
	}
	return "project"
}
