package openapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/schema"
)

const (
	mediaJSON = "application/json"
	mediaHTML = "text/html"
	mediaForm = "application/x-www-form-urlencoded"

	validationErrorsSchema = "ValidationErrors"
	pageDocumentSchema     = "PageDocument"
)

// Option configures Build.
type Option func(*config)

type config struct {
	title   string
	version string
	servers []string
}

func WithTitle(title string) Option {
	return func(cfg *config) {
		if title = strings.TrimSpace(title); title != "" {
			cfg.title = title
		}
	}
}

func WithVersion(version string) Option {
	return func(cfg *config) {
		if version = strings.TrimSpace(version); version != "" {
			cfg.version = version
		}
	}
}

// WithServer adds a server URL to the document.
func WithServer(url string) Option {
	return func(cfg *config) {
		if url = strings.TrimSpace(url); url != "" {
			cfg.servers = append(cfg.servers, url)
		}
	}
}

// Build returns a validated document with a GET and POST operation per page.
// Operation ids are "<page>.view" and "<page>.submit".
func Build(ctx context.Context, list []pages.Page, options ...Option) (*Document, error) {
	cfg := config{title: "authform", version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	schemas := openapi3.Schemas{
		validationErrorsSchema: openapi3.NewSchemaRef("", stringMap("First failing message per field.")),
	}
	schemas[pageDocumentSchema] = openapi3.NewSchemaRef("", pageDocument(schemas))
	doc := &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       &openapi3.Info{Title: cfg.title, Version: cfg.version},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}
	for _, url := range cfg.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	for _, page := range list {
		if err := page.Validate(); err != nil {
			return nil, fmt.Errorf("openapi: %w", err)
		}
		name := RequestSchemaName(page.ID)
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", RequestSchema(page.Schema))
		doc.Paths.Set(page.Route, &openapi3.PathItem{
			Summary: page.Title,
			Get:     viewOperation(page, schemas),
			Post:    submitOperation(page, name, schemas),
		})
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return &Document{spec: doc}, nil
}

// RequestSchemaName is the component name of a form's request body schema.
func RequestSchemaName(form string) string {
	var b strings.Builder
	upper := true
	for _, r := range form {
		if r == '-' || r == '_' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	b.WriteString("Request")
	return b.String()
}

// RequestSchema converts a validation schema into a JSON schema object. Rules
// without a JSON schema equivalent are described in the property description.
func RequestSchema(s *schema.Schema) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
	if s == nil {
		return obj
	}
	for _, field := range s.Fields {
		obj.Properties[field.Name] = openapi3.NewSchemaRef("", fieldSchema(field))
		obj.Required = append(obj.Required, field.Name)
	}
	return obj
}

func fieldSchema(field schema.Field) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	switch field.Format {
	case schema.FormatEmail:
		prop.Format = "email"
	case schema.FormatPassword:
		prop.Format = "password"
	}

	var notes []string
	for _, rule := range field.Rules {
		switch rule.Kind {
		case schema.RuleMinLength:
			prop.MinLength = uint64(rule.Length)
		case schema.RuleMaxLength:
			max := uint64(rule.Length)
			prop.MaxLength = &max
		case schema.RulePattern:
			if rule.Pattern != nil {
				prop.Pattern = rule.Pattern.String()
			}
		}
		notes = append(notes, rule.Describe())
	}
	prop.Description = strings.Join(notes, "; ")
	return prop
}

func stringMap(description string) *openapi3.Schema {
	m := openapi3.NewObjectSchema()
	m.Description = description
	m.AdditionalProperties = openapi3.AdditionalProperties{Schema: openapi3.NewSchemaRef("", openapi3.NewStringSchema())}
	return m
}

func pageDocument(schemas openapi3.Schemas) *openapi3.Schema {
	doc := openapi3.NewObjectSchema()
	doc.Description = "Page definition with its current values and errors. Masked values are omitted."
	doc.Properties["page"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
	doc.Properties["values"] = openapi3.NewSchemaRef("", stringMap("Current value per field."))
	doc.Properties["errors"] = componentRef(schemas, validationErrorsSchema)
	doc.Properties["formErrors"] = openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	doc.Properties["remember"] = openapi3.NewSchemaRef("", openapi3.NewBoolSchema())
	doc.Properties["requestId"] = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	return doc
}

func viewOperation(page pages.Page, schemas openapi3.Schemas) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = ViewOperationID(page.ID)
	op.Summary = "Render the " + page.Title + " page"
	op.Responses = responses(map[int]*openapi3.Response{
		http.StatusOK: openapi3.NewResponse().
			WithDescription("Page rendered as HTML, or as JSON when requested through Accept.").
			WithContent(openapi3.Content{
				mediaHTML: openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
				mediaJSON: openapi3.NewMediaType().WithSchemaRef(componentRef(schemas, pageDocumentSchema)),
			}),
	})
	return op
}

func submitOperation(page pages.Page, requestSchema string, schemas openapi3.Schemas) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = SubmitOperationID(page.ID)
	op.Summary = "Validate and submit the " + page.Title + " form"
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.Content{
				mediaJSON: openapi3.NewMediaType().WithSchemaRef(componentRef(schemas, requestSchema)),
				mediaForm: openapi3.NewMediaType().WithSchemaRef(componentRef(schemas, requestSchema)),
			}),
	}
	op.Responses = responses(map[int]*openapi3.Response{
		http.StatusAccepted: openapi3.NewResponse().
			WithDescription("Submission accepted (JSON clients)."),
		http.StatusSeeOther: openapi3.NewResponse().
			WithDescription("Submission accepted; redirect back to the page (HTML clients)."),
		http.StatusUnprocessableEntity: openapi3.NewResponse().
			WithDescription("Validation failed.").
			WithContent(openapi3.Content{
				mediaHTML: openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
				mediaJSON: openapi3.NewMediaType().WithSchemaRef(componentRef(schemas, pageDocumentSchema)),
			}),
	})
	return op
}

func responses(byStatus map[int]*openapi3.Response) *openapi3.Responses {
	out := &openapi3.Responses{}
	for status, response := range byStatus {
		out.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: response})
	}
	return out
}

// componentRef points at a component schema and carries its value so the
// document validates without a separate resolve pass.
func componentRef(schemas openapi3.Schemas, name string) *openapi3.SchemaRef {
	ref := &openapi3.SchemaRef{Ref: "#/components/schemas/" + name}
	if target, ok := schemas[name]; ok && target != nil {
		ref.Value = target.Value
	}
	return ref
}
