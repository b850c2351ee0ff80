package schema

// Builder appends FieldEntry declarations and assigns each the next
// FieldId (its position). Build() produces an immutable, shareable
// Schema; the builder itself must not be reused afterwards.
type Builder struct {
	entries []FieldEntry
	seen    map[string]bool
}

// NewBuilder creates an empty schema builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]bool)}
}

// AddTextField declares a text field with the given options.
func (b *Builder) AddTextField(name string, opts TextOptions) FieldId {
	return b.AddField(name, NewTextFieldEntry(name, opts))
}

// AddNumericField declares a numeric field with the given options.
func (b *Builder) AddNumericField(name string, opts NumericOptions) FieldId {
	return b.AddField(name, NewNumericFieldEntry(name, opts))
}

// AddField appends an arbitrary FieldEntry and returns its assigned id.
// Duplicate names silently shadow the name→id lookup with the last
// entry added, matching the source's append-only builder (a stricter
// duplicate check belongs at a higher layer if ever needed).
func (b *Builder) AddField(name string, entry FieldEntry) FieldId {
	id := FieldId(len(b.entries))
	b.entries = append(b.entries, entry)
	b.seen[name] = true
	return id
}

// Build finalizes the builder into an immutable Schema.
func (b *Builder) Build() *Schema {
	entries := make([]FieldEntry, len(b.entries))
	copy(entries, b.entries)
	return newSchema(entries)
}
