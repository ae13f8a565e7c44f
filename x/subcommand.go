/*
 * Copyright 2026 Graphward, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package x

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand ties a cobra command to the viper instance that resolves its
// configuration from flags, environment variables and an optional config
// file, in that order of precedence.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

func (s SubCommand) GetString(name string) string {
	return s.Conf.GetString(name)
}

func (s SubCommand) GetBool(name string) bool {
	return s.Conf.GetBool(name)
}

func (s SubCommand) GetInt(name string) int {
	return s.Conf.GetInt(name)
}

func (s SubCommand) GetDuration(name string) time.Duration {
	return s.Conf.GetDuration(name)
}
