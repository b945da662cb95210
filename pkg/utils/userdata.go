package utils

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const userDataTemplate = `#!/bin/bash
# cloud-init payload written by the OpenStack deployer
mkdir -p /etc/deployer
cat > /etc/deployer/app.env <<'ENV'
DEPLOYER_APP_NAME=%s
DEPLOYER_DEPLOYMENT_ID=%s
DEPLOYER_RESOURCE=%s
SERVER_PORT=%d
%sENV
`

// GenerateUserData renders the cloud-init script handed to a booted server.
// Definition properties are exported as environment entries so the artifact
// can pick them up on start.
func GenerateUserData(appName, deploymentID, resource string, port int, properties map[string]string) string {
	keys := lo.Keys(properties)
	slices.Sort(keys)
	var env strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&env, "%s=%s\n", envName(k), properties[k])
	}
	return fmt.Sprintf(userDataTemplate, appName, deploymentID, resource, port, env.String())
}

func envName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
