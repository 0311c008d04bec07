package mcpserver

// WorkspaceGuide describes the note workspace model for LLM consumers.
const WorkspaceGuide = `# Ansuz Workspace Guide

Ansuz is a local-first note workspace. Every note has:

- a **title** (defaults to "Untitled Note" when cleared)
- **content** - an opaque serialized document produced by the editor.
  Tools pass it through verbatim; never try to re-encode it.
- a **tag set** - case-sensitive labels with set semantics: adding a tag
  twice has no effect. Tags drive sidebar filtering.
- a **color** token (e.g. ` + "`#ffffff`" + `) for visual grouping
- a **pin state** - pinned notes sort before all unpinned notes
- timestamps - ` + "`updated_at`" + ` moves on every edit (but not on
  chat activity or selection), and the sidebar orders unpinned notes by
  it, newest first.

Each note also carries a **chat transcript**: an append-only sequence of
user/assistant turns. Use ` + "`ask_assistant`" + ` to add to it;
deleting a note deletes its transcript with it.

## Etiquette

1. Look up ids via ` + "`list_notes`" + ` before mutating; ids are
   opaque and never guessable.
2. Prefer ` + "`update_note`" + ` with only the fields you mean to
   change - omitted fields are preserved.
3. Use ` + "`list_tags`" + ` to reuse existing labels instead of
   inventing near-duplicates.
`
