package mcpserver

// QueryGuide explains how the list tools filter records.
const QueryGuide = `# techhub query guide

techhub serves four read-only collections: articles, issues, documents and
events. Every list tool takes an optional ` + "`query`" + ` plus one optional argument
per facet of its collection.

## Semantics

1. ` + "`query`" + ` is a case-insensitive substring match. Articles search title and
   content, the other collections search title and description. An empty query
   matches everything. Surrounding spaces are part of the query.
2. A facet argument holds one or more comma-separated values. A record passes a
   facet when any of its values is listed (OR within a facet).
3. All given facets and the query must pass (AND across facets).
4. A record with no value for a facet (no tags, no category) never passes a
   non-empty selection for that facet.
5. Events are returned most recent first. Other collections keep fixture order.

## Facets

| Tool | Facets |
|---|---|
| list_articles | tag |
| list_issues | status (open, in-progress, resolved), priority (low, medium, high), tag |
| list_documents | category, file_type (pdf, word, excel, ppt) |
| list_events | type (milestone, release, meeting, other), importance (normal, important, critical) |

Call ` + "`get_facets`" + ` for the tags and categories currently in use.

## Examples

- Resolved or in-progress issues tagged React:
  ` + "`list_issues {\"status\": \"resolved,in-progress\", \"tag\": \"React\"}`" + `
- Critical releases: ` + "`list_events {\"type\": \"release\", \"importance\": \"critical\"}`" + `
- Any mention of "memory" in any collection: ` + "`search {\"query\": \"memory\"}`" + `
`
