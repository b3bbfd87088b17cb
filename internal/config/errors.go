package config

import "github.com/doni-wahyudi/stillmove-planner-sub001/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration: %q",
	}

	errUnknownAlertSound = &apperr.Error{
		Message: "alert sound file not found: %s",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be off, beep, or an mp3, ogg, flac, or wav file)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDriver = &apperr.Error{
		Message: "unknown storage driver %q (must be bolt, sqlite, or postgres)",
	}

	errInvalidPort = &apperr.Error{
		Message: "server port must be between 1 and 65535, got %d",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "please provide a valid time period, got %q",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the start time must be earlier than the end time",
	}

	ErrNoCredentials = &apperr.Error{
		Message: "no postgres connection string found: set storage.dsn or run 'stillmove credentials set'",
	}

	errKeyringUnavailable = &apperr.Error{
		Message: "OS keyring is not available",
	}

	errEmptyDSN = &apperr.Error{
		Message: "connection string cannot be empty",
	}
)
