package verse

import _ "embed"

// promptTemplate takes one %s: the user's query.
//
//go:embed prompts/verse_prompt.txt
var promptTemplate string
