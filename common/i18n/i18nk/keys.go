// Package i18nk holds the message IDs of the embedded locale files.
package i18nk

type Key string

const (
	ConfigWritten   Key = "config_written"
	NotATerminal    Key = "not_a_terminal"
	OpenedFile      Key = "opened_file"
	VolumeFailed    Key = "volume_failed"
	NoVolumes       Key = "no_volumes"
	SearchSummary   Key = "search_summary"
	SearchSkipped   Key = "search_skipped"
	HistorySaveFail Key = "history_save_failed"
	NoHistory       Key = "no_history"
	HistoryCleared  Key = "history_cleared"
	BookmarkAdded   Key = "bookmark_added"
	BookmarkRemoved Key = "bookmark_removed"
	NoBookmarks     Key = "no_bookmarks"
	BrowseVolumes   Key = "browse_volumes"
	BrowseResults   Key = "browse_results"
	BrowseEmpty     Key = "browse_empty"
	BrowseSearching Key = "browse_searching"
	BrowsePrompt    Key = "browse_prompt"
	BrowseError     Key = "browse_error"
	BrowseOpened    Key = "browse_opened"
	HelpUp          Key = "help_up"
	HelpActivate    Key = "help_activate"
	HelpSearch      Key = "help_search"
	HelpVolumes     Key = "help_volumes"
	HelpRefresh     Key = "help_refresh"
	HelpQuit        Key = "help_quit"
	HelpCancel      Key = "help_cancel"
)
