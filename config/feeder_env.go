// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// EnvFeeder feeds using environment variables, resolved through the `env`
// struct tags.
type EnvFeeder struct{}

// Feed the environment variables into the given structure.
func (f EnvFeeder) Feed(structure interface{}) error {
	return feedEnvValue(reflect.ValueOf(structure), "")
}

// Do nothing, the environment is never written back to.
func (f EnvFeeder) Write(structure interface{}, merge bool) error {
	return nil
}

func feedEnvValue(v reflect.Value, key string) error {
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("not a pointer value")
	}

	v = reflect.Indirect(v)

	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := feedEnvValue(
				v.Field(i).Addr(),
				v.Type().Field(i).Tag.Get("env"),
			); err != nil {
				return err
			}
		}

	case reflect.String:
		if val, ok := lookupEnv(key); ok {
			v.SetString(val)
		}

	case reflect.Bool:
		if val, ok := lookupEnv(key); ok {
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("could not parse boolean from %s: %v", key, err)
			}
			v.SetBool(b)
		}

	case reflect.Int:
		if val, ok := lookupEnv(key); ok {
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("could not parse integer from %s: %v", key, err)
			}
			v.SetInt(i)
		}
	}

	return nil
}

func lookupEnv(key string) (string, bool) {
	if key == "" {
		return "", false
	}

	return os.LookupEnv(key)
}
