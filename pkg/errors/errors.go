package errors

// Error message constants for the rs-imports-group application
const (
	// File processing errors
	ErrMsgFailedToReadFile   = "failed to read file"
	ErrMsgFailedToReadStdin  = "failed to read stdin"
	ErrMsgFailedToParseFile  = "failed to parse file"
	ErrMsgFailedToFormatFile = "failed to format file"
	ErrMsgFailedToWriteFile  = "failed to write file"
	ErrMsgFailedToStatFile   = "failed to stat file"

	// Directory processing errors
	ErrMsgFailedToCheckPath     = "failed to check path"
	ErrMsgFailedToFindRustFiles = "failed to find Rust files in directory"
	ErrMsgFilesFailedToProcess  = "%d files failed to process"
	ErrMsgFilesNeedReformatting = "%d files need reformatting"
	ErrMsgFileNeedsReformatting = "%s needs reformatting"
	ErrMsgInPlaceRequiresPath   = "--in-place requires a PATH"

	// Configuration errors
	ErrMsgFailedToResolvePath   = "failed to resolve path"
	ErrMsgFailedToStatConfig    = "failed to stat config file"
	ErrMsgFailedToReadConfig    = "failed to read config file"
	ErrMsgFailedToLoadConfig    = "failed to load configuration"
	ErrMsgFailedToInitLogger    = "failed to initialize logger"
	ErrMsgFailedToGetWorkingDir = "failed to get current working directory"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files, --check or --diff to review changes."
	InfoMsgNoRustFilesFound            = "No Rust files found in directory: %s"
	InfoMsgFoundRustFiles              = "Found %d Rust files in directory: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgErrorCount                  = ", %d files had errors"
	InfoMsgChangedCount                = ", %d files need reformatting"
)
