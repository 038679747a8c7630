package version

// Version is the semantic version of this build. Release tooling keeps
// it in sync with the git tag.
const Version = "0.1.0"
