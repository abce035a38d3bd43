package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/activecm/mdl/config"
	"github.com/activecm/mdl/resources"
	"github.com/activecm/mdl/util"
	"github.com/blang/semver"
	"github.com/google/go-github/github"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

//Strings used for informing the user of a new version.
var informFmtStr = "\nThere's a new %s version of mdl %s available at:\nhttps://github.com/%s/releases\n"
var versions = []string{"Major", "Minor", "Patch"}

// updateState records the outcome of the last remote version check
type updateState struct {
	LastCheck time.Time `json:"last_check"`
	Latest    string    `json:"latest"`
}

// versionSource looks up the newest released version of owner/repo
type versionSource func(ctx context.Context, owner, repo string) (semver.Version, error)

func init() {
	command := cli.Command{
		Name:   "version",
		Usage:  "Show the mdl version and check for updates",
		Flags:  []cli.Flag{configFlag},
		Action: showVersion,
	}

	bootstrapCommands(command)
}

// GlobalFlags are accepted before the command name
func GlobalFlags() []cli.Flag {
	return []cli.Flag{configFlag}
}

// GetVersionPrinter returns the printer used for --version
func GetVersionPrinter() func(*cli.Context) {
	return func(c *cli.Context) {
		showVersion(c)
	}
}

func showVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s version %s\n", c.App.Name, c.App.Version)

	res, err := resources.InitResources(configPath(c))
	if err != nil {
		return nil
	}
	fmt.Fprint(c.App.Writer, updateCheck(res, updateStatePath(), time.Now(), getRemoteVersion))
	return nil
}

// updateStatePath returns ~/.mdl/update-check.json
func updateStatePath() string {
	return filepath.Join(filepath.Dir(config.UserConfigPath()), "update-check.json")
}

// updateCheck compares the running version against the newest release and
// returns a notice when an upgrade is available. The remote is only asked
// once every UpdateCheckFrequency days; the answer is cached in statePath.
// The returned string is printed regardless, so "" is returned on error.
func updateCheck(res *resources.Resources, statePath string, now time.Time, remote versionSource) string {
	delta := res.Config.S.UserConfig.UpdateCheckFrequency
	if delta <= 0 {
		return ""
	}

	repository := res.Config.S.UserConfig.Repository
	owner, repo, ok := splitRepository(repository)
	if !ok {
		return ""
	}

	state, err := readUpdateState(statePath)
	if err != nil {
		res.Log.WithField("file", statePath).Debug(err)
	}

	newVersion, parseErr := semver.ParseTolerant(state.Latest)
	if parseErr != nil || util.AgeInDays(state.LastCheck, now) >= delta {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		newVersion, err = remote(ctx, owner, repo)
		cancel()
		if err != nil {
			res.Log.WithField("repository", repository).Debug(err)
			return ""
		}

		res.Log.WithFields(log.Fields{
			"LastUpdateCheck": now,
			"NewestVersion":   fmt.Sprint(newVersion),
		}).Info("Checked for new version")

		state = updateState{LastCheck: now, Latest: newVersion.String()}
		if err := writeUpdateState(statePath, state); err != nil {
			res.Log.WithField("file", statePath).Debug(err)
		}
	}

	if newVersion.GT(res.Config.R.Version) {
		return informUser(res.Config.R.Version, newVersion, repository)
	}
	return ""
}

func splitRepository(repository string) (string, string, bool) {
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func readUpdateState(path string) (updateState, error) {
	var state updateState
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}
	err = json.Unmarshal(data, &state)
	return state, err
}

func writeUpdateState(path string, state updateState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Returns the first index where v1 is greater than v2
func versionDiffIndex(v1 semver.Version, v2 semver.Version) int {
	if v1.Major != v2.Major {
		return 0
	}
	if v1.Minor != v2.Minor {
		return 1
	}
	return 2
}

func getRemoteVersion(ctx context.Context, owner, repo string) (semver.Version, error) {
	client := github.NewClient(nil)
	refs, _, err := client.Git.GetRefs(ctx, owner, repo, "refs/tags/v")
	if err != nil {
		return semver.Version{}, err
	}
	if len(refs) == 0 {
		return semver.Version{}, fmt.Errorf("no release tags found for %s/%s", owner, repo)
	}

	s := strings.TrimPrefix(refs[len(refs)-1].GetRef(), "refs/tags/")
	return semver.ParseTolerant(s)
}

// Assembles a notice for the user informing them of an upgrade.
func informUser(local semver.Version, remote semver.Version, repository string) string {
	return fmt.Sprintf(informFmtStr,
		versions[versionDiffIndex(remote, local)],
		fmt.Sprint(remote),
		repository)
}
