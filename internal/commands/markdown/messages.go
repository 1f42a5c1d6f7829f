package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitekit/internal/domain"
)

const (
	importDirectoryMessageType = "sitekit.markdown.import_directory"
	syncDirectoryMessageType   = "sitekit.markdown.sync_directory"
)

// ImportDirectoryCommand imports Markdown pages found under Directory. Pages
// imported before are left untouched.
type ImportDirectoryCommand struct {
	// Directory is relative to the importer filesystem root.
	Directory string `json:"directory"`
	// Collection applies to documents whose frontmatter omits one.
	Collection string `json:"collection,omitempty"`
	// Scope is a scope key ("global", "store:7", "entity:restaurant:42") for
	// documents whose frontmatter omits one.
	Scope  string `json:"scope,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validateDirectoryFields(importDirectoryMessageType, cmd.Directory, cmd.Collection, cmd.Scope)
}

// SyncDirectoryCommand imports Markdown pages and overwrites pages that were
// imported before from the same documents.
type SyncDirectoryCommand struct {
	Directory  string `json:"directory"`
	Collection string `json:"collection,omitempty"`
	Scope      string `json:"scope,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validateDirectoryFields(syncDirectoryMessageType, cmd.Directory, cmd.Collection, cmd.Scope)
}

func validateDirectoryFields(messageType, directory, collection, scope string) error {
	errs := validation.Errors{}
	if strings.TrimSpace(directory) == "" {
		errs["directory"] = validation.NewError(messageType+".directory_required", "directory is required")
	}
	if _, err := domain.NormalizeCollection(collection); err != nil {
		errs["collection"] = validation.NewError(messageType+".collection_invalid", err.Error())
	}
	if _, err := domain.ParseScope(scope); err != nil {
		errs["scope"] = validation.NewError(messageType+".scope_invalid", err.Error())
	}
	return errs.Filter()
}

func parseTarget(collection, scope string) (domain.Collection, domain.Scope) {
	normalized, _ := domain.NormalizeCollection(collection)
	parsed, _ := domain.ParseScope(scope)
	return normalized, parsed
}
