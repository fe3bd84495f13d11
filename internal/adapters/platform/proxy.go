// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"strings"
)

var proxyVars = []string{"http_proxy", "https_proxy", "ftp_proxy", "no_proxy"}

// ProxyEnv returns proxy variables for a child process in both cases.
// The lowercase variable takes precedence per Unix convention.
func ProxyEnv() []string {
	return proxyEnvFrom(os.Getenv)
}

func proxyEnvFrom(getenv func(string) string) []string {
	var env []string

	for _, name := range proxyVars {
		value := getenv(name)
		if value == "" {
			value = getenv(strings.ToUpper(name))
		}

		if value == "" {
			continue
		}

		env = append(env, name+"="+value, strings.ToUpper(name)+"="+value)
	}

	return env
}
