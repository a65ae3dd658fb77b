package build

import "errors"

var (
	// No usable build tool was found on PATH.
	ErrNoTool = errors.New("no build tool found")

	// The external build tool exited with an error.
	ErrBuild = errors.New("build failed")

	// A requested target names no declared stage alias.
	ErrUnknownTarget = errors.New("unknown target")

	// Pushing an image tag failed.
	ErrPush = errors.New("push failed")

	// A push was requested but no tags are configured.
	ErrNoTags = errors.New("no tags to push")

	// Writing the rendered Dockerfile into the staging directory failed.
	ErrStaging = errors.New("staging failed")
)
