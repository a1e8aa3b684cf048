package errors

// Convenience constructors for the failure taxonomy used across the
// generation pipeline.

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// Catalog errors. Always fatal: a bad catalog entry must never produce a
// route set that disagrees with the sitemap.

func CatalogValidation(kind, id, reason string) *BuildError {
	return New(CategoryCatalog, SeverityFatal, "catalog validation failed").
		WithContext("kind", kind).
		WithContext("id", id).
		WithContext("reason", reason)
}

func CatalogLoad(kind string, cause error) *BuildError {
	return Wrap(cause, CategoryCatalog, SeverityFatal, "catalog load failed").
		WithContext("kind", kind)
}

// Page generation errors

// TemplateRender marks an unresolved required substitution. Fatal for the
// page; the build orchestrator may escalate it to fatal-for-build in strict
// mode.
func TemplateRender(url, field string) *BuildError {
	return New(CategoryTemplate, SeverityError, "required template attribute missing").
		WithContext("url", url).
		WithContext("field", field)
}

// StructuredData marks a schema object missing a required field. A page must
// never ship malformed structured data, so this is fatal for the build.
func StructuredData(schemaType, field string) *BuildError {
	return New(CategorySchema, SeverityFatal, "structured data missing required field").
		WithContext("schema", schemaType).
		WithContext("field", field)
}

// Manifest errors

func ManifestOverflow(count, ceiling int) *BuildError {
	return New(CategoryManifest, SeverityFatal, "manifest entry ceiling exceeded").
		WithContext("entries", count).
		WithContext("ceiling", ceiling)
}

func DuplicateURL(url string) *BuildError {
	return New(CategoryManifest, SeverityFatal, "duplicate page URL").
		WithContext("url", url)
}

// Output errors

func SitemapEncode(shard string, cause error) *BuildError {
	return Wrap(cause, CategorySitemap, SeverityFatal, "sitemap encoding failed").
		WithContext("shard", shard)
}

func SinkWrite(path string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "content write failed").
		WithContext("path", path)
}
